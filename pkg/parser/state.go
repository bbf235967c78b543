package parser

// stateFn is one step of a construct. It looks at t.current and returns
// what the tokenizer should do next.
type stateFn func(t *tokenizer) state

type stateKind uint8

const (
	kindNext stateKind = iota
	kindRetry
	kindOk
	kindNok
	kindError
)

// state is the result of a step.
type state struct {
	kind stateKind
	fn   stateFn
	err  error
}

// next feeds the following unit to fn.
func next(fn stateFn) state { return state{kind: kindNext, fn: fn} }

// retry calls fn with the same, unconsumed unit.
func retry(fn stateFn) state { return state{kind: kindRetry, fn: fn} }

// fail aborts tokenization with err, a *message.Message.
func fail(err error) state { return state{kind: kindError, err: err} }

//nolint:gochecknoglobals // Immutable state values.
var (
	stateOk  = state{kind: kindOk}
	stateNok = state{kind: kindNok}
)

func (s state) isNok() bool { return s.kind == kindNok }

func (s state) result() error {
	if s.kind == kindError {
		return s.err
	}
	return nil
}
