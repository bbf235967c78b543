package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// Raw flow is fenced code (``` or ~~~) and math (`$$`). Both are concrete:
// once open, only a closing fence or a container ending stops them.

func rawFlowStart(t *tokenizer) state {
	c := t.parse.options.Constructs
	if !c.CodeFenced && !c.MathFlow {
		return stateNok
	}
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(rawFlowBeforeSequenceOpen), stateNok)
		return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
	}
	if t.current == '$' || t.current == '`' || t.current == '~' {
		return retry(rawFlowBeforeSequenceOpen)
	}
	return stateNok
}

func rawFlowBeforeSequenceOpen(t *tokenizer) state {
	prefix := 0
	if n := len(t.events); n > 1 && t.events[n-1].Token == event.TokSpaceOrTab {
		prefix = t.events[n-1].Point.Column - t.events[n-2].Point.Column
	}

	c := t.parse.options.Constructs
	code := c.CodeFenced && (t.current == '`' || t.current == '~')
	math := c.MathFlow && t.current == '$'
	if !code && !math {
		return stateNok
	}

	t.ts.marker = byte(t.current)
	t.ts.sizeC = prefix
	if math {
		t.ts.token1 = event.TokMathFlow
		t.ts.token2 = event.TokMathFlowFence
		t.ts.token3 = event.TokMathFlowFenceSequence
		t.ts.token5 = event.TokMathFlowFenceMeta
		t.ts.token6 = event.TokMathFlowChunk
	} else {
		t.ts.token1 = event.TokCodeFenced
		t.ts.token2 = event.TokCodeFencedFence
		t.ts.token3 = event.TokCodeFencedFenceSequence
		t.ts.token4 = event.TokCodeFencedFenceInfo
		t.ts.token5 = event.TokCodeFencedFenceMeta
		t.ts.token6 = event.TokCodeFlowChunk
	}

	t.enter(t.ts.token1)
	t.enter(t.ts.token2)
	t.enter(t.ts.token3)
	return retry(rawFlowSequenceOpen)
}

func rawFlowSequenceOpen(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.ts.size++
		t.consume()
		return next(rawFlowSequenceOpen)
	}

	sizeMin := codeFencedSequenceSizeMin
	if t.ts.marker == '$' {
		sizeMin = mathFlowSequenceSizeMin
	}
	if t.ts.size < sizeMin {
		rawFlowReset(t)
		return stateNok
	}

	after := rawFlowInfoBefore
	if t.ts.marker == '$' {
		after = rawFlowMetaBefore
	}

	t.exit(t.ts.token3)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(after), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(after)
}

func rawFlowInfoBefore(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		t.exit(t.ts.token2)
		t.concrete = true
		t.check(next(rawFlowAtNonLazyBreak), next(rawFlowAfter))
		return retry(nonLazyContinuationStart)
	}
	t.enter(t.ts.token4)
	t.enterLink(event.TokData, event.ContentString)
	return retry(rawFlowInfo)
}

func rawFlowInfo(t *tokenizer) state {
	switch {
	case t.current == eof || t.current == '\n':
		t.exit(event.TokData)
		t.exit(t.ts.token4)
		return retry(rawFlowInfoBefore)
	case t.current == '\t' || t.current == ' ':
		t.exit(event.TokData)
		t.exit(t.ts.token4)
		t.attempt(next(rawFlowMetaBefore), stateNok)
		return retry(spaceOrTab(t))
	case t.current == int(t.ts.marker) && (t.current == '$' || t.current == '`'):
		// A backtick fence cannot have a backtick in its info string.
		t.concrete = false
		rawFlowReset(t)
		return stateNok
	default:
		t.consume()
		return next(rawFlowInfo)
	}
}

func rawFlowMetaBefore(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		return retry(rawFlowInfoBefore)
	}
	t.enter(t.ts.token5)
	t.enterLink(event.TokData, event.ContentString)
	return retry(rawFlowMeta)
}

func rawFlowMeta(t *tokenizer) state {
	switch {
	case t.current == eof || t.current == '\n':
		t.exit(event.TokData)
		t.exit(t.ts.token5)
		return retry(rawFlowInfoBefore)
	case t.current == int(t.ts.marker) && (t.current == '$' || t.current == '`'):
		t.concrete = false
		rawFlowReset(t)
		return stateNok
	default:
		t.consume()
		return next(rawFlowMeta)
	}
}

func rawFlowAtNonLazyBreak(t *tokenizer) state {
	t.attempt(next(rawFlowAfter), next(rawFlowContentBefore))
	lineEnding(t)
	return next(rawFlowCloseStart)
}

func rawFlowCloseStart(t *tokenizer) state {
	t.enter(t.ts.token2)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(rawFlowBeforeSequenceClose), stateNok)
		return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
	}
	return retry(rawFlowBeforeSequenceClose)
}

func rawFlowBeforeSequenceClose(t *tokenizer) state {
	if t.current != int(t.ts.marker) {
		return stateNok
	}
	t.enter(t.ts.token3)
	return retry(rawFlowSequenceClose)
}

func rawFlowSequenceClose(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.ts.sizeB++
		t.consume()
		return next(rawFlowSequenceClose)
	}
	if t.ts.sizeB < t.ts.size {
		t.ts.sizeB = 0
		return stateNok
	}
	t.ts.sizeB = 0
	t.exit(t.ts.token3)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(rawFlowSequenceCloseAfter), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(rawFlowSequenceCloseAfter)
}

func rawFlowSequenceCloseAfter(t *tokenizer) state {
	if t.current != eof && t.current != '\n' {
		return stateNok
	}
	t.exit(t.ts.token2)
	return stateOk
}

func rawFlowContentBefore(t *tokenizer) state {
	lineEnding(t)
	return next(rawFlowContentStart)
}

// rawFlowContentStart strips up to as much indent from content lines as
// the opening fence had.
func rawFlowContentStart(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(rawFlowBeforeContentChunk), stateNok)
		return retry(spaceOrTabMinMax(t, 0, t.ts.sizeC))
	}
	return retry(rawFlowBeforeContentChunk)
}

func rawFlowBeforeContentChunk(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		t.check(next(rawFlowAtNonLazyBreak), next(rawFlowAfter))
		return retry(nonLazyContinuationStart)
	}
	t.enter(t.ts.token6)
	return retry(rawFlowContentChunk)
}

func rawFlowContentChunk(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		t.exit(t.ts.token6)
		return retry(rawFlowBeforeContentChunk)
	}
	t.consume()
	return next(rawFlowContentChunk)
}

func rawFlowAfter(t *tokenizer) state {
	t.exit(t.ts.token1)
	rawFlowReset(t)
	t.interrupt = false
	t.concrete = false
	return stateOk
}

func rawFlowReset(t *tokenizer) {
	t.ts.marker = 0
	t.ts.sizeC = 0
	t.ts.size = 0
	t.ts.token1 = event.TokData
	t.ts.token2 = event.TokData
	t.ts.token3 = event.TokData
	t.ts.token4 = event.TokData
	t.ts.token5 = event.TokData
	t.ts.token6 = event.TokData
}
