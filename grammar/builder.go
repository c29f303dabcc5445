package grammar

import (
	"fmt"
)

// Builder is the mutable form of a grammar. Clients add rules and declarations,
// then call Close to get the read-only Grammar. After Close, every mutating
// call fails with ErrClosed.
type Builder struct {
	name        string
	symtab      *SymbolTable
	rules       []*Rule
	hashval     int // next free pointer ID; 0…3 are taken by rule 0
	start       *Symbol
	embeddedSeq int
	expectSR    int
	closed      bool
	err         error
}

// NewBuilder creates a builder for a grammar with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:        name,
		symtab:      newSymbolTable(),
		hashval:     4,
		embeddedSeq: 1,
		expectSR:    -1,
	}
}

// Intern returns the symbol for v, creating it if necessary. Interning is
// idempotent by value. After Close, Intern only resolves existing symbols.
func (b *Builder) Intern(v Value) *Symbol {
	if b.closed {
		return b.symtab.Resolve(v)
	}
	return b.symtab.intern(v, false)
}

// SymbolTable returns the builder's symbol table.
func (b *Builder) SymbolTable() *SymbolTable {
	return b.symtab
}

func (b *Builder) checkOpen() error {
	if b.closed {
		return Errorf(ErrClosed, "grammar %q is closed", b.name)
	}
	return nil
}

// fail records the first error; Close will report it.
func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	tracer().Errorf(err.Error())
	return err
}

// Start declares the start symbol. If no start symbol is declared, the LHS of
// the first rule is used.
func (b *Builder) Start(name string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.start != nil {
		return b.fail(Errorf(ErrStartTwice, "'start' defined twice"))
	}
	b.start = b.Intern(Name(name))
	return nil
}

// DeclarePrecedence adds a line to the precedence block. Lines are given in
// order of increasing binding strength, unless EndPrecedence is called with
// highFirst set.
func (b *Builder) DeclarePrecedence(assoc Assoc, syms ...Value) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	line := make([]*Symbol, len(syms))
	for i, v := range syms {
		line[i] = b.Intern(v)
	}
	if err := b.symtab.registerPrec(assoc, line); err != nil {
		return b.fail(err)
	}
	return nil
}

// EndPrecedence closes the precedence block and assigns precedence ranks.
// Close will end an open precedence block implicitly.
func (b *Builder) EndPrecedence(highFirst bool) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.symtab.endRegisterPrec(highFirst); err != nil {
		return b.fail(err)
	}
	return nil
}

// Convert registers a conversion string for a token, which is used by code
// generators to denote the token in their host language.
func (b *Builder) Convert(v Value, conv string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.symtab.registerConv(b.Intern(v), conv); err != nil {
		return b.fail(err)
	}
	return nil
}

// EndConvert closes the conversion block.
func (b *Builder) EndConvert() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.symtab.endRegisterConv(); err != nil {
		return b.fail(err)
	}
	return nil
}

// DeclareTerminal declares tokens. Declarations are checked against the
// grammar's terminals when the grammar is closed; mismatches produce warnings.
func (b *Builder) DeclareTerminal(syms ...Value) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	for _, v := range syms {
		sym := b.Intern(v)
		dup := false
		for _, t := range b.symtab.tokenList {
			dup = dup || t == sym
		}
		if !dup {
			b.symtab.tokenList = append(b.symtab.tokenList, sym)
		}
	}
	return nil
}

// ExpectSRConflicts sets the number of expected shift/reduce conflicts.
func (b *Builder) ExpectSRConflicts(n int) {
	b.expectSR = n
}

// LHS starts a new rule for non-terminal name.
func (b *Builder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{b: b, lhs: b.Intern(Name(name))}
}

func (b *Builder) addRule(lhs *Symbol, rhs []*Symbol, action interface{}, prec *Symbol) *Rule {
	r := newRule(lhs, rhs, action, len(b.rules)+1, b.hashval, prec)
	b.rules = append(b.rules, r)
	b.hashval += len(rhs) + 1
	tracer().Debugf("add rule %s", r)
	return r
}

// Rules returns the rules added so far (rule 0 is not yet present).
func (b *Builder) Rules() []*Rule {
	return b.rules
}

// --- Rule builder ----------------------------------------------------------

// RuleBuilder collects the RHS of a single rule. Use as
//
//    b.LHS("E").N("E").T("+").N("E").End()
//
type RuleBuilder struct {
	b        *Builder
	lhs      *Symbol
	rhs      []*Symbol
	embedded []*Rule
	action   interface{}
	prec     *Symbol
}

// N appends a named symbol.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	return rb.Sym(Name(name))
}

// T appends a literal token.
func (rb *RuleBuilder) T(lit string) *RuleBuilder {
	return rb.Sym(Literal(lit))
}

// Sym appends the symbol for v.
func (rb *RuleBuilder) Sym(v Value) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.b.Intern(v))
	return rb
}

// Prec sets an explicit precedence override for the rule.
func (rb *RuleBuilder) Prec(v Value) *RuleBuilder {
	rb.prec = rb.b.Intern(v)
	return rb
}

// Action sets the action payload of the rule.
func (rb *RuleBuilder) Action(payload interface{}) *RuleBuilder {
	rb.action = payload
	return rb
}

// Mid inserts an embedded action: an anonymous non-terminal with a single empty
// rule carrying the payload.
func (rb *RuleBuilder) Mid(payload interface{}) *RuleBuilder {
	if rb.b.closed {
		return rb
	}
	sym := rb.b.symtab.intern(Name(fmt.Sprintf("@%d", rb.b.embeddedSeq)), true)
	rb.b.embeddedSeq++
	rb.embedded = append(rb.embedded, &Rule{lhs: sym, action: payload})
	rb.rhs = append(rb.rhs, sym)
	return rb
}

// Epsilon ends an empty rule.
func (rb *RuleBuilder) Epsilon() error {
	if len(rb.rhs) > 0 {
		return rb.b.fail(Errorf(ErrIllegalRule, "epsilon rule for %s with non-empty RHS", rb.lhs))
	}
	return rb.End()
}

// End adds the rule to the grammar.
func (rb *RuleBuilder) End() error {
	b := rb.b
	if err := b.checkOpen(); err != nil {
		return err
	}
	if rb.lhs.value == DummyValue || rb.lhs.value == AnchorValue || rb.lhs.value == ErrorValue {
		return b.fail(Errorf(ErrIllegalRule, "reserved symbol %s used as LHS", rb.lhs))
	}
	if rb.lhs.value.Literal {
		return b.fail(Errorf(ErrIllegalRule, "literal %s used as LHS", rb.lhs))
	}
	for _, sym := range rb.rhs {
		if sym == b.symtab.dummy {
			return b.fail(Errorf(ErrIllegalRule, "reserved symbol %s used in RHS of %s", sym, rb.lhs))
		}
	}
	for _, e := range rb.embedded {
		b.addRule(e.lhs, nil, e.action, nil)
	}
	b.addRule(rb.lhs, rb.rhs, rb.action, rb.prec)
	return nil
}
