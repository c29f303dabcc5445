package grammar

import (
	"fmt"
)

// Value is the identity of a grammar symbol. Symbols are interned by value:
// interning the same value twice yields the same symbol.
type Value struct {
	Name    string
	Literal bool // literal token string, e.g. '+'
}

// Name returns the value of a named symbol.
func Name(name string) Value {
	return Value{Name: name}
}

// Literal returns the value of a literal token.
func Literal(lit string) Value {
	return Value{Name: lit, Literal: true}
}

func (v Value) String() string {
	if v.Literal {
		return fmt.Sprintf("'%s'", v.Name)
	}
	return v.Name
}

// Reserved symbol values.
var (
	DummyValue  = Name("$start")
	AnchorValue = Name("$end")
	ErrorValue  = Name("error")
)

// Assoc is the associativity of a symbol with declared precedence.
type Assoc int8

// Associativity values. NoAssoc is used for symbols without precedence.
const (
	NoAssoc Assoc = iota
	Left
	Right
	Nonassoc
)

func (a Assoc) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case Nonassoc:
		return "nonassoc"
	}
	return "none"
}

// Symbol is a terminal or non-terminal of a grammar.
//
// All derived properties are computed when the grammar is closed. Clients see
// symbols through read-only accessors only.
type Symbol struct {
	ident int
	value Value
	dummy bool

	term    bool
	termSet bool
	prec    int
	assoc   Assoc
	conv    string

	heads    []*Pointer // rule start pointers of rules with this symbol as LHS
	locate   []*Pointer // RHS positions where this symbol occurs
	selfNull bool
	nullable bool
	expand   []*Pointer // LR(0) expansion, sorted by pointer ID
	useless  bool
}

func newSymbol(v Value, dummy bool) *Symbol {
	return &Symbol{
		ident: -1,
		value: v,
		dummy: dummy,
		prec:  -1,
	}
}

// ID returns the symbol's ID. Terminals have lower IDs than non-terminals.
// Before a grammar is closed, ID returns -1.
func (s *Symbol) ID() int {
	return s.ident
}

// Value returns the identity of s.
func (s *Symbol) Value() Value {
	return s.value
}

// Name returns the printable name of s.
func (s *Symbol) Name() string {
	return s.value.String()
}

func (s *Symbol) String() string {
	return s.value.String()
}

// IsDummy is true for the dummy start symbol, the end marker and the
// anonymous non-terminals of embedded actions.
func (s *Symbol) IsDummy() bool {
	return s.dummy
}

// IsTerminal returns true for terminals.
func (s *Symbol) IsTerminal() bool {
	return s.term
}

// IsNonterminal returns true for non-terminals.
func (s *Symbol) IsNonterminal() bool {
	return s.termSet && !s.term
}

// Precedence returns the precedence rank of s, if declared.
func (s *Symbol) Precedence() (int, bool) {
	return s.prec, s.prec >= 0
}

// Assoc returns the associativity of s.
func (s *Symbol) Assoc() Assoc {
	return s.assoc
}

// Conv returns the token conversion string for s (empty if none has been registered).
func (s *Symbol) Conv() string {
	return s.conv
}

// Heads returns the start pointers of all rules with s as their LHS.
func (s *Symbol) Heads() []*Pointer {
	return s.heads
}

// Locate returns all RHS positions where s occurs.
func (s *Symbol) Locate() []*Pointer {
	return s.locate
}

// SelfNull is true if s has an empty rule.
func (s *Symbol) SelfNull() bool {
	return s.selfNull
}

// Nullable is true if s derives the empty string.
func (s *Symbol) Nullable() bool {
	return s.nullable
}

// Expand returns the LR(0) expansion of a non-terminal: all rule start pointers
// reachable by repeatedly descending into a leading non-terminal, sorted by
// pointer ID.
func (s *Symbol) Expand() []*Pointer {
	return s.expand
}

// Useless is true for non-terminals which cannot be part of any derivation
// from the start symbol.
func (s *Symbol) Useless() bool {
	return s.useless
}

func (s *Symbol) setTerminal(t bool) {
	if s.termSet {
		panic(fmt.Sprintf("terminal flag of symbol %s set twice", s))
	}
	s.term, s.termSet = t, true
}
