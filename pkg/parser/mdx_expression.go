package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/message"
)

// MDX expressions are `{...}` with balanced braces. The contents are not
// parsed: only the braces are counted.

func mdxExpressionFlowStart(t *tokenizer) state {
	if !t.parse.options.Constructs.MDXExpressionFlow {
		return stateNok
	}
	t.ts.token1 = event.TokMDXFlowExpression
	t.ts.token2 = event.TokMDXFlowExpressionMarker
	t.concrete = true
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(mdxExpressionFlowBefore), next(mdxExpressionFlowNok))
		return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
	}
	return retry(mdxExpressionFlowBefore)
}

func mdxExpressionFlowBefore(t *tokenizer) state {
	if t.current != '{' {
		return retry(mdxExpressionFlowNok)
	}
	t.attempt(next(mdxExpressionFlowAfter), next(mdxExpressionFlowNok))
	return retry(mdxExpressionStart)
}

func mdxExpressionFlowAfter(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(mdxExpressionFlowEnd), next(mdxExpressionFlowNok))
		return retry(spaceOrTab(t))
	}
	return retry(mdxExpressionFlowEnd)
}

func mdxExpressionFlowEnd(t *tokenizer) state {
	t.concrete = false
	t.ts.token1 = event.TokData
	t.ts.token2 = event.TokData
	if t.current == eof || t.current == '\n' {
		t.interrupt = false
		return stateOk
	}
	return stateNok
}

func mdxExpressionFlowNok(t *tokenizer) state {
	t.concrete = false
	t.ts.token1 = event.TokData
	t.ts.token2 = event.TokData
	return stateNok
}

func mdxExpressionTextStart(t *tokenizer) state {
	if t.current != '{' || !t.parse.options.Constructs.MDXExpressionText {
		return stateNok
	}
	t.ts.token1 = event.TokMDXTextExpression
	t.ts.token2 = event.TokMDXTextExpressionMarker
	t.attempt(next(mdxExpressionTextAfter), next(mdxExpressionTextNok))
	return retry(mdxExpressionStart)
}

func mdxExpressionTextAfter(t *tokenizer) state {
	t.ts.token1 = event.TokData
	t.ts.token2 = event.TokData
	return stateOk
}

func mdxExpressionTextNok(t *tokenizer) state {
	t.ts.token1 = event.TokData
	t.ts.token2 = event.TokData
	return stateNok
}

// mdxExpressionStart expects `{`.
func mdxExpressionStart(t *tokenizer) state {
	t.enter(t.ts.token1)
	t.enter(t.ts.token2)
	t.consume()
	t.exit(t.ts.token2)
	return next(mdxExpressionBefore)
}

func mdxExpressionBefore(t *tokenizer) state {
	switch {
	case t.current == eof:
		t.ts.size = 0
		return fail(message.New(
			message.PointPlace(t.point),
			"Unexpected end of file in expression, expected a corresponding closing brace for `{`",
			message.RuleUnexpectedEOF,
		))
	case t.current == '\n':
		lineEnding(t)
		return next(mdxExpressionEOLAfter)
	case t.current == '}' && t.ts.size == 0:
		t.enter(t.ts.token2)
		t.consume()
		t.exit(t.ts.token2)
		t.exit(t.ts.token1)
		return stateOk
	default:
		t.enter(event.TokMDXExpressionData)
		return retry(mdxExpressionInside)
	}
}

func mdxExpressionInside(t *tokenizer) state {
	if t.current == eof || t.current == '\n' || (t.current == '}' && t.ts.size == 0) {
		t.exit(event.TokMDXExpressionData)
		return retry(mdxExpressionBefore)
	}
	switch t.current {
	case '{':
		t.ts.size++
	case '}':
		t.ts.size--
	}
	t.consume()
	return next(mdxExpressionInside)
}

func mdxExpressionEOLAfter(t *tokenizer) state {
	if t.ts.token1 == event.TokMDXFlowExpression && t.lazy {
		t.ts.size = 0
		return fail(message.New(
			message.PointPlace(t.point),
			"Unexpected lazy line in expression in container, expected line to be prefixed with `>` when in a block quote, whitespace when in a list, etc",
			message.RuleUnexpectedLazy,
		))
	}
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(mdxExpressionBefore), stateNok)
		return retry(spaceOrTabMinMax(t, 0, unbounded))
	}
	return retry(mdxExpressionBefore)
}
