package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// Flow is the block level: it tries each block construct in priority order
// and falls back to content.

func flowStart(t *tokenizer) state {
	switch t.current {
	case '#':
		t.attempt(next(flowAfter), next(flowBeforeContent))
		return retry(headingATXStart)
	case '$', '`', '~':
		t.attempt(next(flowAfter), next(flowBeforeContent))
		return retry(rawFlowStart)
	case '*', '_':
		t.attempt(next(flowAfter), next(flowBeforeContent))
		return retry(thematicBreakStart)
	case '<':
		t.attempt(next(flowAfter), next(flowBeforeMDXExpression))
		return retry(htmlFlowStart)
	case '{':
		t.attempt(next(flowAfter), next(flowBeforeHeadingATX))
		return retry(mdxExpressionFlowStart)
	default:
		return retry(flowBlankLineBefore)
	}
}

func flowBlankLineBefore(t *tokenizer) state {
	t.attempt(next(flowBlankLineAfter), next(flowBeforeCodeIndented))
	return retry(blankLineStart)
}

func flowBeforeCodeIndented(t *tokenizer) state {
	t.attempt(next(flowAfter), next(flowBeforeRaw))
	return retry(codeIndentedStart)
}

func flowBeforeRaw(t *tokenizer) state {
	t.attempt(next(flowAfter), next(flowBeforeHTML))
	return retry(rawFlowStart)
}

func flowBeforeHTML(t *tokenizer) state {
	t.attempt(next(flowAfter), next(flowBeforeMDXExpression))
	return retry(htmlFlowStart)
}

func flowBeforeMDXExpression(t *tokenizer) state {
	t.attempt(next(flowAfter), next(flowBeforeHeadingATX))
	return retry(mdxExpressionFlowStart)
}

func flowBeforeHeadingATX(t *tokenizer) state {
	t.attempt(next(flowAfter), next(flowBeforeHeadingSetext))
	return retry(headingATXStart)
}

func flowBeforeHeadingSetext(t *tokenizer) state {
	t.attempt(next(flowAfter), next(flowBeforeThematicBreak))
	return retry(headingSetextStart)
}

func flowBeforeThematicBreak(t *tokenizer) state {
	t.attempt(next(flowAfter), next(flowBeforeContent))
	return retry(thematicBreakStart)
}

func flowBeforeContent(t *tokenizer) state {
	t.attempt(next(flowAfter), stateNok)
	return retry(contentChunkStart)
}

func flowBlankLineAfter(t *tokenizer) state {
	if t.current == eof {
		return stateOk
	}
	t.enter(event.TokBlankLineEnding)
	t.consume()
	t.exit(event.TokBlankLineEnding)
	// Blank lines end paragraphs, so what follows does not interrupt.
	t.interrupt = false
	return next(flowStart)
}

func flowAfter(t *tokenizer) state {
	if t.current == eof {
		return stateOk
	}
	lineEnding(t)
	return next(flowStart)
}

func blankLineStart(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(blankLineAfter), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(blankLineAfter)
}

func blankLineAfter(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		return stateOk
	}
	return stateNok
}

// nonLazyContinuationStart matches a line ending followed by a line that
// is not lazy.
func nonLazyContinuationStart(t *tokenizer) state {
	if t.current != '\n' {
		return stateNok
	}
	lineEnding(t)
	return next(nonLazyContinuationAfter)
}

func nonLazyContinuationAfter(t *tokenizer) state {
	if t.lazy {
		return stateNok
	}
	return stateOk
}
