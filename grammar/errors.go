package grammar

import (
	"fmt"
)

// ErrorKind categorizes fatal construction errors.
type ErrorKind string

const (
	// ErrClosed is returned when a grammar is modified after it has been closed.
	ErrClosed ErrorKind = "grammar-closed"
	// ErrStartTwice indicates a second start symbol declaration.
	ErrStartTwice ErrorKind = "start-defined-twice"
	// ErrPrecTwice indicates a second precedence block.
	ErrPrecTwice ErrorKind = "prec-defined-twice"
	// ErrConvertTwice indicates a second token conversion block.
	ErrConvertTwice ErrorKind = "convert-defined-twice"
	// ErrNoRules indicates a grammar without any rule.
	ErrNoRules ErrorKind = "no-rules"
	// ErrIllegalRule indicates a malformed rule, e.g. a reserved symbol as LHS.
	ErrIllegalRule ErrorKind = "illegal-rule"
	// ErrInfiniteRecursion indicates a rule the automaton builder can never leave.
	ErrInfiniteRecursion ErrorKind = "infinite-recursion"
	// ErrConflicts indicates unresolved conflicts in strict mode.
	ErrConflicts ErrorKind = "unresolved-conflicts"
	// ErrInternal indicates a violated invariant of the table builder itself.
	ErrInternal ErrorKind = "internal"
)

func (k ErrorKind) Error() string {
	return string(k)
}

// CompileError is the error type for all fatal construction errors. No partial
// output of a build is usable after a CompileError has been returned.
//
// CompileErrors match their kind with errors.Is:
//
//    if errors.Is(err, grammar.ErrStartTwice) { … }
//
type CompileError struct {
	Kind  ErrorKind
	Msg   string
	Rule  *Rule // offending rule, if any
	State int   // offending state, or -1
}

// Errorf creates a CompileError of kind k.
func Errorf(k ErrorKind, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind:  k,
		Msg:   fmt.Sprintf(format, args...),
		State: -1,
	}
}

// WithRule attaches the offending rule.
func (e *CompileError) WithRule(r *Rule) *CompileError {
	e.Rule = r
	return e
}

// WithState attaches the offending state.
func (e *CompileError) WithState(id int) *CompileError {
	e.State = id
	return e
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("compile error (%s): %s", e.Kind, e.Msg)
	if e.Rule != nil {
		msg += fmt.Sprintf(" [rule %s]", e.Rule)
	}
	if e.State >= 0 {
		msg += fmt.Sprintf(" [state %d]", e.State)
	}
	return msg
}

// Is lets errors.Is match a CompileError against its kind.
func (e *CompileError) Is(target error) bool {
	if k, ok := target.(ErrorKind); ok {
		return e.Kind == k
	}
	return false
}
