package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// eof is the value of tokenizer.current at the end of the input.
const eof = -1

type containerKind uint8

const (
	containerBlockQuote containerKind = iota
	containerListItem
	containerGFMFootnoteDefinition
)

// containerState tracks one open block quote or list item in the
// document tokenizer.
type containerState struct {
	kind         containerKind
	blankInitial bool
	size         int
}

type labelKind uint8

const (
	labelImage labelKind = iota
	labelLink
	labelGFMFootnote
	// labelGFMUndefinedFootnote is a `[^` whose label has no footnote
	// definition. It may still be a link to a `[^...]` definition.
	labelGFMUndefinedFootnote
)

// labelStart is an opening bracket, recorded as the index range of its
// marker events.
type labelStart struct {
	kind     labelKind
	start    [2]int
	inactive bool
}

// label is a matched pair of brackets.
type label struct {
	kind  labelKind
	start [2]int
	end   [2]int
}

type attemptKind uint8

const (
	attemptKindAttempt attemptKind = iota
	attemptKindCheck
)

type progress struct {
	eventsLen int
	stackLen  int
	previous  int
	current   int
	point     event.Point
}

type attempt struct {
	ok       state
	nok      state
	kind     attemptKind
	progress *progress
}

// tokenizeState holds scratch fields shared by construct states. Constructs
// reset what they use before returning ok or nok.
//
//nolint:govet // Field order follows use, not alignment.
type tokenizeState struct {
	documentChild                      *tokenizer
	documentChildState                 *state
	documentContainerStack             []containerState
	documentContinued                  int
	documentDataLink                   *event.Link
	documentExits                      [][]event.Event
	documentLazyAcceptingBefore        bool
	documentAtFirstParagraphOfListItem bool

	spaceOrTabEOLContent event.Content
	spaceOrTabEOLConnect bool
	spaceOrTabEOLOk      bool
	spaceOrTabConnect    bool
	spaceOrTabContent    event.Content
	spaceOrTabMin        int
	spaceOrTabMax        int
	spaceOrTabSize       int
	spaceOrTabToken      event.TokenKind

	labelStarts      []labelStart
	labelStartsLoose []labelStart
	labels           []label
	definitions      []string

	gfmFootnoteDefinitions []string

	returnState stateFn

	connect bool
	marker  byte
	markerB byte
	markers []byte
	seen    bool
	size    int
	sizeB   int
	sizeC   int
	start   int
	end     int
	token1  event.TokenKind
	token2  event.TokenKind
	token3  event.TokenKind
	token4  event.TokenKind
	token5  event.TokenKind
	token6  event.TokenKind
}

// skipTo is where to continue on a line after its container prefixes.
type skipTo struct {
	offset  int
	virtual int
}

// tokenizer runs the state machine of one content type over the source.
//
//nolint:govet // Field order follows use, not alignment.
type tokenizer struct {
	parse *parseState

	columnStart []skipTo
	firstLine   int
	lineStart   event.Point
	consumed    bool
	attempts    []attempt

	current  int
	previous int
	point    event.Point

	events    []event.Event
	stack     []event.TokenKind
	edits     editMap
	resolvers []resolver

	ts tokenizeState

	// interrupt is set when the construct before may be interrupted.
	interrupt bool
	// concrete is set while a construct is open that containers cannot
	// pierce, such as fenced code.
	concrete bool
	// pierce is set on the line where a new container started.
	pierce bool
	// lazy is set when the current line is a lazy continuation.
	lazy bool
}

func newTokenizer(point event.Point, parse *parseState) *tokenizer {
	return &tokenizer{
		parse:     parse,
		firstLine: point.Line,
		lineStart: point,
		consumed:  true,
		current:   eof,
		previous:  eof,
		point:     point,
		ts: tokenizeState{
			spaceOrTabToken: event.TokSpaceOrTab,
			token1:          event.TokData,
			token2:          event.TokData,
			token3:          event.TokData,
			token4:          event.TokData,
			token5:          event.TokData,
			token6:          event.TokData,
		},
	}
}

// registerResolver adds r to the end of the resolver list, once.
func (t *tokenizer) registerResolver(r resolver) {
	for _, existing := range t.resolvers {
		if existing == r {
			return
		}
	}
	t.resolvers = append(t.resolvers, r)
}

// registerResolverBefore adds r to the front of the resolver list, once.
func (t *tokenizer) registerResolverBefore(r resolver) {
	for _, existing := range t.resolvers {
		if existing == r {
			return
		}
	}
	t.resolvers = append([]resolver{r}, t.resolvers...)
}

// defineSkip declares that the line of point continues at point: bytes
// before it on that line belong to container prefixes.
func (t *tokenizer) defineSkip(point event.Point) {
	point = t.movePointBack(point)
	info := skipTo{offset: point.Offset, virtual: point.Virtual}
	at := point.Line - t.firstLine
	if at >= len(t.columnStart) {
		t.columnStart = append(t.columnStart, info)
	} else {
		t.columnStart[at] = info
	}
	t.accountForPotentialSkip()
}

func (t *tokenizer) accountForPotentialSkip() {
	at := t.point.Line - t.firstLine
	if t.point.Column == 1 && at < len(t.columnStart) {
		t.moveTo(t.columnStart[at])
	}
}

func (t *tokenizer) expect(current int) {
	t.consumed = false
	t.current = current
}

// consume accepts the current unit.
func (t *tokenizer) consume() {
	if t.consumed {
		panic("parser: unit consumed twice; a state returned next instead of retry")
	}
	t.moveOne()
	t.previous = t.current
	t.current = eof
	t.consumed = true
}

func (t *tokenizer) moveOne() {
	kind, b := byteAction(t.parse.source, t.point)
	switch kind {
	case actionIgnore:
		t.point.Offset++
	case actionInsert:
		t.previous = int(b)
		t.point.Column++
		t.point.Virtual++
	case actionNormal:
		t.previous = int(b)
		t.point.Virtual = 0
		t.point.Offset++
		if b == '\n' {
			t.point.Line++
			t.point.Column = 1
			if t.point.Line-t.firstLine+1 > len(t.columnStart) {
				t.columnStart = append(t.columnStart, skipTo{offset: t.point.Offset, virtual: t.point.Virtual})
			}
			t.lineStart = t.point
			t.accountForPotentialSkip()
		} else {
			t.point.Column++
		}
	}
}

func (t *tokenizer) moveTo(to skipTo) {
	for t.point.Offset < to.offset || (t.point.Offset == to.offset && t.point.Virtual < to.virtual) {
		t.moveOne()
	}
}

func (t *tokenizer) enter(token event.TokenKind) {
	t.enterImpl(token, nil)
}

// enterLink opens a token whose content is parsed later as content.
func (t *tokenizer) enterLink(token event.TokenKind, content event.Content) {
	t.enterImpl(token, event.NewLink(content))
}

func (t *tokenizer) enterImpl(token event.TokenKind, link *event.Link) {
	point := t.movePointBack(t.point)
	t.stack = append(t.stack, token)
	t.events = append(t.events, event.Event{Kind: event.Enter, Token: token, Point: point, Link: link})
}

func (t *tokenizer) exit(token event.TokenKind) {
	if len(t.stack) == 0 {
		panic("parser: exit " + token.String() + " without open token")
	}
	current := t.stack[len(t.stack)-1]
	if current != token {
		panic("parser: exit " + token.String() + " while " + current.String() + " is open")
	}
	t.stack = t.stack[:len(t.stack)-1]

	point := t.point
	if t.previous == '\n' {
		point = t.lineStart
	} else {
		point = t.movePointBack(point)
	}
	t.events = append(t.events, event.Event{Kind: event.Exit, Token: token, Point: point})
}

// linkPrevious connects the enter event at index to the linked enter two
// events before it.
func (t *tokenizer) linkPrevious(index int) {
	if index < 2 || t.events[index-2].Link == nil || t.events[index].Link == nil {
		return
	}
	event.Connect(t.events[index-2].Link, t.events[index].Link)
}

func (t *tokenizer) movePointBack(point event.Point) event.Point {
	for point.Offset > 0 {
		point.Offset--
		kind, _ := byteAction(t.parse.source, point)
		if kind != actionIgnore {
			point.Offset++
			break
		}
	}
	return point
}

func (t *tokenizer) capture() *progress {
	return &progress{
		previous:  t.previous,
		current:   t.current,
		point:     t.point,
		eventsLen: len(t.events),
		stackLen:  len(t.stack),
	}
}

func (t *tokenizer) free(p *progress) {
	t.previous = p.previous
	t.current = p.current
	t.point = p.point
	t.events = t.events[:p.eventsLen]
	t.stack = t.stack[:p.stackLen]
}

// check runs a construct and always reverts it, continuing with ok or nok.
func (t *tokenizer) check(ok, nok state) {
	t.attempts = append(t.attempts, attempt{
		kind:     attemptKindCheck,
		progress: t.capture(),
		ok:       ok,
		nok:      nok,
	})
}

// attempt runs a construct, keeps its events when it succeeds and reverts
// them when it fails.
func (t *tokenizer) attempt(ok, nok state) {
	var p *progress
	if !nok.isNok() {
		p = t.capture()
	}
	t.attempts = append(t.attempts, attempt{
		kind:     attemptKindAttempt,
		progress: p,
		ok:       ok,
		nok:      nok,
	})
}

// push feeds the source from from up to to into s.
func (t *tokenizer) push(from, to skipTo, s state) state {
	return t.pushImpl(from, to, s, false)
}

// flush feeds the end of input to s and, when resolve is set, runs the
// registered resolvers.
func (t *tokenizer) flush(s state, resolve bool) (*subresult, error) {
	to := skipTo{offset: t.point.Offset, virtual: t.point.Virtual}
	s = t.pushImpl(to, to, s, true)
	if err := s.result(); err != nil {
		return nil, err
	}

	value := &subresult{
		definitions:            t.ts.definitions,
		gfmFootnoteDefinitions: t.ts.gfmFootnoteDefinitions,
	}
	t.ts.definitions = nil
	t.ts.gfmFootnoteDefinitions = nil

	if resolve {
		resolvers := t.resolvers
		t.resolvers = nil
		for _, r := range resolvers {
			result, err := t.resolve(r)
			if err != nil {
				return nil, err
			}
			if result != nil {
				value.definitions = append(value.definitions, result.definitions...)
				value.gfmFootnoteDefinitions = append(value.gfmFootnoteDefinitions, result.gfmFootnoteDefinitions...)
			}
		}
		t.edits.consume(&t.events)
	}

	return value, nil
}

func (t *tokenizer) pushImpl(from, to skipTo, s state, flush bool) state {
	t.moveTo(from)

	for {
		switch s.kind {
		case kindError:
			t.consumed = true
			return s
		case kindOk, kindNok:
			if len(t.attempts) == 0 {
				t.consumed = true
				return s
			}
			a := t.attempts[len(t.attempts)-1]
			t.attempts = t.attempts[:len(t.attempts)-1]
			if a.kind == attemptKindCheck || s.kind == kindNok {
				if a.progress != nil {
					t.free(a.progress)
				}
			}
			t.consumed = true
			if s.kind == kindOk {
				s = a.ok
			} else {
				s = a.nok
			}
		case kindNext:
			inRange := t.point.Offset < to.offset || (t.point.Offset == to.offset && t.point.Virtual < to.virtual)
			if !inRange && !flush {
				t.consumed = true
				return s
			}
			if inRange {
				kind, b := byteAction(t.parse.source, t.point)
				if kind == actionIgnore {
					t.moveOne()
					continue
				}
				t.expect(int(b))
			} else {
				t.expect(eof)
			}
			s = s.fn(t)
		case kindRetry:
			s = s.fn(t)
		}
	}
}

type action uint8

const (
	actionNormal action = iota
	actionIgnore
	actionInsert
)

// byteAction says how the unit at point is seen by states: CR before LF
// is ignored, a lone CR is a line feed, and tabs expand to virtual spaces.
func byteAction(source []byte, point event.Point) (action, byte) {
	if point.Offset >= len(source) {
		panic("parser: byte action out of bounds")
	}
	b := source[point.Offset]
	switch b {
	case '\r':
		if point.Offset < len(source)-1 && source[point.Offset+1] == '\n' {
			return actionIgnore, 0
		}
		return actionNormal, '\n'
	case '\t':
		remainder := point.Column % tabSize
		vs := 0
		if remainder != 0 {
			vs = tabSize - remainder
		}
		if point.Virtual == 0 {
			if vs == 0 {
				return actionNormal, b
			}
			return actionInsert, b
		}
		if vs == 0 {
			return actionNormal, ' '
		}
		return actionInsert, ' '
	default:
		return actionNormal, b
	}
}
