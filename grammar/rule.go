package grammar

import (
	"bytes"
	"fmt"
)

// Rule is a grammar rule (production) LHS ::= RHS.
//
// Rule 0 is a synthetic rule wrapping the start symbol:
//
//     $start ::= S $end $end
//
type Rule struct {
	ident    int
	lhs      *Symbol
	rhs      []*Symbol
	action   interface{}
	hash     int
	ptrs     []*Pointer
	specPrec *Symbol // explicit precedence override
	prec     *Symbol // resolved precedence symbol
	nullable bool
	useless  bool
}

func newRule(lhs *Symbol, rhs []*Symbol, action interface{}, id, hash int, prec *Symbol) *Rule {
	r := &Rule{
		ident:    id,
		lhs:      lhs,
		rhs:      rhs,
		action:   action,
		hash:     hash,
		specPrec: prec,
		prec:     prec,
	}
	r.ptrs = make([]*Pointer, len(rhs)+1)
	for i, sym := range rhs {
		r.ptrs[i] = &Pointer{rule: r, index: i, symbol: sym, ident: hash + i}
	}
	r.ptrs[len(rhs)] = &Pointer{rule: r, index: len(rhs), ident: hash + len(rhs)}
	return r
}

// ID returns the serial number of the rule. Rule 0 is the synthetic start rule.
func (r *Rule) ID() int {
	return r.ident
}

// LHS returns the left hand side symbol.
func (r *Rule) LHS() *Symbol {
	return r.lhs
}

// RHS returns the right hand side symbols. Clients must not modify the slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the number of RHS symbols.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEmpty is true for epsilon rules.
func (r *Rule) IsEmpty() bool {
	return len(r.rhs) == 0
}

// Action returns the opaque action payload of the rule.
func (r *Rule) Action() interface{} {
	return r.action
}

// Hash returns the offset of the rule's first pointer within the dense pointer space.
func (r *Rule) Hash() int {
	return r.hash
}

// Pointers returns the location pointers of the rule, including the reduce pointer.
func (r *Rule) Pointers() []*Pointer {
	return r.ptrs
}

// Precedence returns the symbol whose precedence this rule uses: the explicit
// override, or else the rightmost terminal of the RHS. May be nil.
func (r *Rule) Precedence() *Symbol {
	return r.prec
}

// SpecifiedPrecedence returns the explicit precedence override, or nil.
func (r *Rule) SpecifiedPrecedence() *Symbol {
	return r.specPrec
}

// Nullable is true if every RHS symbol is nullable.
func (r *Rule) Nullable() bool {
	return r.nullable
}

// Useless is true if the rule cannot take part in any derivation from the start symbol.
func (r *Rule) Useless() bool {
	return r.useless
}

// IsAccept is true for a rule ending in the end marker.
func (r *Rule) IsAccept() bool {
	if len(r.rhs) == 0 {
		return false
	}
	return r.rhs[len(r.rhs)-1].value == AnchorValue
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%d: %s ::=", r.ident, r.lhs))
	for _, sym := range r.rhs {
		b.WriteString(" ")
		b.WriteString(sym.String())
	}
	return b.String()
}

// --- Location pointers -----------------------------------------------------

// Pointer is a position within the RHS of a rule: symbols [0,index) have been
// parsed. Every rule has one more pointer than RHS symbols, pointing behind the
// last symbol (the reduce pointer).
//
// Pointers live in a dense address space: the ID of a pointer is
// rule.Hash()+index, which makes pointer IDs usable as set members and map keys.
type Pointer struct {
	rule   *Rule
	index  int
	symbol *Symbol // nil for the reduce pointer
	ident  int
}

// ID returns the pointer's position in the dense pointer space.
func (p *Pointer) ID() int {
	return p.ident
}

// Rule returns the rule p points into.
func (p *Pointer) Rule() *Rule {
	return p.rule
}

// Index returns the RHS index p points to.
func (p *Pointer) Index() int {
	return p.index
}

// Symbol returns the symbol after the pointer, or nil for a reduce pointer.
func (p *Pointer) Symbol() *Symbol {
	return p.symbol
}

// IsReduce is true for the pointer behind the last RHS symbol.
func (p *Pointer) IsReduce() bool {
	return p.symbol == nil
}

// IsHead is true for the pointer in front of the first RHS symbol.
func (p *Pointer) IsHead() bool {
	return p.index == 0
}

// Next returns the pointer advanced by one symbol. It panics if p is a reduce pointer.
func (p *Pointer) Next() *Pointer {
	if p.IsReduce() {
		panic(fmt.Sprintf("pointer does not exist: next of %s", p))
	}
	return p.rule.ptrs[p.index+1]
}

// Before returns the pointer n symbols to the left of p.
func (p *Pointer) Before(n int) *Pointer {
	if n > p.index {
		panic(fmt.Sprintf("pointer does not exist: %d before %s", n, p))
	}
	return p.rule.ptrs[p.index-n]
}

func (p *Pointer) String() string {
	if p.IsReduce() {
		return fmt.Sprintf("(%d,%d #)", p.rule.ident, p.index)
	}
	return fmt.Sprintf("(%d,%d %s)", p.rule.ident, p.index, p.symbol)
}

// Item returns a dotted-rule rendition of p, e.g. "E ::= E . '+' E".
func (p *Pointer) Item() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%s ::=", p.rule.lhs))
	for i, sym := range p.rule.rhs {
		if i == p.index {
			b.WriteString(" .")
		}
		b.WriteString(" ")
		b.WriteString(sym.String())
	}
	if p.IsReduce() {
		b.WriteString(" .")
	}
	return b.String()
}
