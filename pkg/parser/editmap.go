package parser

import (
	"sort"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// edit replaces remove events at index with add.
type edit struct {
	index  int
	remove int
	add    []event.Event
}

// editMap collects splices into an event list and applies them in one go,
// so resolvers can keep using the indices of the unchanged list.
type editMap struct {
	edits []edit
}

// add queues a splice. Splices at the same index are merged: removals add
// up and new events go after the ones queued earlier.
func (m *editMap) add(index, remove int, add []event.Event) {
	m.addImpl(index, remove, add, false)
}

// addBefore is add, but new events go before the ones queued earlier.
func (m *editMap) addBefore(index, remove int, add []event.Event) {
	m.addImpl(index, remove, add, true)
}

func (m *editMap) addImpl(index, remove int, add []event.Event, before bool) {
	if remove == 0 && len(add) == 0 {
		return
	}
	for i := range m.edits {
		e := &m.edits[i]
		if e.index != index {
			continue
		}
		e.remove += remove
		if before {
			e.add = append(append([]event.Event(nil), add...), e.add...)
		} else {
			e.add = append(e.add, add...)
		}
		return
	}
	m.edits = append(m.edits, edit{index: index, remove: remove, add: append([]event.Event(nil), add...)})
}

// consume applies all queued splices to events.
func (m *editMap) consume(events *[]event.Event) {
	if len(m.edits) == 0 {
		return
	}
	sort.SliceStable(m.edits, func(i, j int) bool { return m.edits[i].index < m.edits[j].index })

	src := *events
	size := len(src)
	for _, e := range m.edits {
		size += len(e.add) - e.remove
	}
	out := make([]event.Event, 0, max(size, 0))

	at := 0
	for _, e := range m.edits {
		if e.index > at {
			out = append(out, src[at:e.index]...)
			at = e.index
		}
		out = append(out, e.add...)
		at = min(at+e.remove, len(src))
	}
	out = append(out, src[at:]...)

	*events = out
	m.edits = m.edits[:0]
}
