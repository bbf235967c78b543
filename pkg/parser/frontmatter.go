package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

//nolint:gochecknoglobals // Read-only lookup table.
var byteOrderMark = [3]byte{0xEF, 0xBB, 0xBF}

func bomStart(t *tokenizer) state {
	if t.current != int(byteOrderMark[0]) {
		return stateNok
	}
	t.enter(event.TokByteOrderMark)
	return retry(bomInside)
}

func bomInside(t *tokenizer) state {
	if t.current != int(byteOrderMark[t.ts.size]) {
		t.ts.size = 0
		return stateNok
	}
	t.ts.size++
	t.consume()
	if t.ts.size < len(byteOrderMark) {
		return next(bomInside)
	}
	t.exit(event.TokByteOrderMark)
	t.ts.size = 0
	return stateOk
}

// Frontmatter is YAML between `---` fences or TOML between `+++` fences at
// the very start of the document.

func frontmatterStart(t *tokenizer) state {
	if !t.parse.options.Constructs.Frontmatter || (t.current != '+' && t.current != '-') {
		return stateNok
	}
	t.ts.marker = byte(t.current)
	t.enter(event.TokFrontmatter)
	t.enter(event.TokFrontmatterFence)
	t.enter(event.TokFrontmatterSequence)
	return retry(frontmatterOpenSequence)
}

func frontmatterOpenSequence(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.ts.size++
		t.consume()
		return next(frontmatterOpenSequence)
	}
	if t.ts.size != frontmatterSequenceSize {
		t.ts.marker = 0
		t.ts.size = 0
		return stateNok
	}
	t.ts.size = 0
	t.exit(event.TokFrontmatterSequence)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(frontmatterOpenAfter), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(frontmatterOpenAfter)
}

func frontmatterOpenAfter(t *tokenizer) state {
	if t.current != '\n' {
		t.ts.marker = 0
		return stateNok
	}
	t.exit(event.TokFrontmatterFence)
	lineEnding(t)
	t.attempt(next(frontmatterAfter), next(frontmatterContentStart))
	return next(frontmatterCloseStart)
}

func frontmatterCloseStart(t *tokenizer) state {
	if t.current != int(t.ts.marker) {
		return stateNok
	}
	t.enter(event.TokFrontmatterFence)
	t.enter(event.TokFrontmatterSequence)
	return retry(frontmatterCloseSequence)
}

func frontmatterCloseSequence(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.ts.size++
		t.consume()
		return next(frontmatterCloseSequence)
	}
	if t.ts.size != frontmatterSequenceSize {
		t.ts.size = 0
		return stateNok
	}
	t.ts.size = 0
	t.exit(event.TokFrontmatterSequence)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(frontmatterCloseAfter), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(frontmatterCloseAfter)
}

func frontmatterCloseAfter(t *tokenizer) state {
	if t.current != eof && t.current != '\n' {
		return stateNok
	}
	t.exit(event.TokFrontmatterFence)
	return stateOk
}

func frontmatterContentStart(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		return retry(frontmatterContentEnd)
	}
	t.enter(event.TokFrontmatterChunk)
	return retry(frontmatterContentInside)
}

func frontmatterContentInside(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		t.exit(event.TokFrontmatterChunk)
		return retry(frontmatterContentEnd)
	}
	t.consume()
	return next(frontmatterContentInside)
}

func frontmatterContentEnd(t *tokenizer) state {
	if t.current == eof {
		t.ts.marker = 0
		return stateNok
	}
	lineEnding(t)
	t.attempt(next(frontmatterAfter), next(frontmatterContentStart))
	return next(frontmatterCloseStart)
}

func frontmatterAfter(t *tokenizer) state {
	t.ts.marker = 0
	t.exit(event.TokFrontmatter)
	return stateOk
}

// lineEnding emits the current line ending as its own token.
func lineEnding(t *tokenizer) {
	t.enter(event.TokLineEnding)
	t.consume()
	t.exit(event.TokLineEnding)
}
