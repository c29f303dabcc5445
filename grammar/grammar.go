package grammar

import (
	"golang.org/x/tools/container/intsets"
)

// Grammar is a closed grammar. It is read-only: all derived properties of
// symbols and rules have been computed by Builder.Close.
type Grammar struct {
	name     string
	symtab   *SymbolTable
	rules    []*Rule
	ptrs     []*Pointer // dense pointer space, indexed by pointer ID
	start    *Symbol
	expectSR int

	uselessNT    []*Symbol
	uselessRules []*Rule
}

// Close finishes the grammar. It
//
// ■ prepends rule 0: $start ::= S $end $end
//
// ■ determines terminals (symbols without rules) and assigns symbol IDs,
// terminals first
//
// ■ computes heads, locations and rule precedences
//
// ■ computes expansion sets, nullability and usefulness.
//
// Close fails if an error has been recorded while building, if there are no
// rules, or if the grammar has been closed before.
func (b *Builder) Close() (*Grammar, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	b.closed = true
	if b.err != nil {
		return nil, b.err
	}
	if len(b.rules) == 0 {
		return nil, b.fail(Errorf(ErrNoRules, "no rule in input"))
	}
	if b.start == nil {
		b.start = b.rules[0].lhs
	}
	symtab := b.symtab
	if !symtab.endPrec {
		symtab.endRegisterPrec(false)
	}
	symtab.endConv = true
	r0 := newRule(symtab.dummy, []*Symbol{b.start, symtab.anchor, symtab.anchor}, nil, 0, 0, nil)
	g := &Grammar{
		name:     b.name,
		symtab:   symtab,
		rules:    append([]*Rule{r0}, b.rules...),
		start:    b.start,
		expectSR: b.expectSR,
	}
	if err := g.init(b.hashval); err != nil {
		return nil, b.fail(err)
	}
	tracer().Infof("grammar %q closed: %d rules, %d terminals, %d non-terminals",
		g.name, len(g.rules), len(g.Terminals()), len(g.Nonterminals()))
	return g, nil
}

func (g *Grammar) init(ptrcnt int) error {
	g.ptrs = make([]*Pointer, ptrcnt)
	for _, r := range g.rules {
		for _, p := range r.ptrs {
			g.ptrs[p.ident] = p
		}
		r.lhs.heads = append(r.lhs.heads, r.ptrs[0])
	}
	for _, sym := range g.symtab.symbols {
		sym.setTerminal(len(sym.heads) == 0)
		if sym.term {
			continue
		}
		for _, ptr := range sym.heads {
			if ptr.IsReduce() {
				sym.selfNull = true
				break
			}
		}
	}
	if g.start.IsTerminal() {
		return Errorf(ErrIllegalRule, "start symbol %s has no rules", g.start)
	}
	g.symtab.fix()
	for _, r := range g.rules {
		var last *Symbol
		for _, ptr := range r.ptrs {
			if ptr.IsReduce() {
				continue
			}
			sym := ptr.symbol
			sym.locate = append(sym.locate, ptr)
			if sym.IsTerminal() {
				last = sym
			}
		}
		if r.prec == nil {
			r.prec = last
		}
	}
	g.symtab.checkDeclared()
	for _, sym := range g.Nonterminals() {
		g.computeExpand(sym)
	}
	g.computeNullable()
	g.computeUseless()
	return nil
}

// computeExpand collects all rule start pointers reachable from t by
// descending into leading non-terminals. Iterative DFS with a visited set, so
// left-recursive cycles are safe.
func (g *Grammar) computeExpand(t *Symbol) {
	var set, visited intsets.Sparse
	stack := []*Symbol{t}
	visited.Insert(t.ident)
	for len(stack) > 0 {
		sym := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ptr := range sym.heads {
			set.Insert(ptr.ident)
			if next := ptr.symbol; next != nil && next.IsNonterminal() && !visited.Has(next.ident) {
				visited.Insert(next.ident)
				stack = append(stack, next)
			}
		}
	}
	ids := set.AppendTo(nil) // ascending order
	t.expand = make([]*Pointer, len(ids))
	for i, id := range ids {
		t.expand[i] = g.ptrs[id]
	}
	tracer().Debugf("expand(%s) = %v", t, t.expand)
}

// computeNullable is a worklist fixed point: a rule is nullable once all of its
// RHS occurrences are nullable, a symbol is nullable once one of its rules is.
func (g *Grammar) computeNullable() {
	pending := make([]int, len(g.rules)) // RHS occurrences not yet known to be nullable
	var worklist []*Rule
	for _, r := range g.rules {
		pending[r.ident] = len(r.rhs)
		if len(r.rhs) == 0 {
			worklist = append(worklist, r)
		}
	}
	for len(worklist) > 0 {
		r := worklist[0]
		worklist = worklist[1:]
		r.nullable = true
		if lhs := r.lhs; !lhs.nullable {
			lhs.nullable = true
			for _, ptr := range lhs.locate {
				rr := ptr.rule
				if pending[rr.ident]--; pending[rr.ident] == 0 {
					worklist = append(worklist, rr)
				}
			}
		}
	}
}

// computeUseless marks non-terminals and rules which cannot be part of a
// derivation of a terminal string from the start symbol. A non-terminal is
// useful if it is productive and reachable from rule 0 through productive rules.
func (g *Grammar) computeUseless() {
	productive := make([]bool, len(g.rules))
	pending := make([]int, len(g.rules)) // non-terminal occurrences not yet known productive
	var prodSyms intsets.Sparse
	var worklist []*Rule
	for _, r := range g.rules {
		for _, sym := range r.rhs {
			if sym.IsNonterminal() {
				pending[r.ident]++
			}
		}
		if pending[r.ident] == 0 {
			worklist = append(worklist, r)
		}
	}
	for len(worklist) > 0 {
		r := worklist[0]
		worklist = worklist[1:]
		productive[r.ident] = true
		if lhs := r.lhs; !prodSyms.Has(lhs.ident) {
			prodSyms.Insert(lhs.ident)
			for _, ptr := range lhs.locate {
				rr := ptr.rule
				if pending[rr.ident]--; pending[rr.ident] == 0 {
					worklist = append(worklist, rr)
				}
			}
		}
	}
	// mark & sweep from the dummy start symbol
	var reached intsets.Sparse
	reached.Insert(g.symtab.dummy.ident)
	stack := []*Symbol{g.symtab.dummy}
	for len(stack) > 0 {
		sym := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ptr := range sym.heads {
			if !productive[ptr.rule.ident] {
				continue
			}
			for _, s := range ptr.rule.rhs {
				if s.IsNonterminal() && !reached.Has(s.ident) {
					reached.Insert(s.ident)
					stack = append(stack, s)
				}
			}
		}
	}
	for _, sym := range g.Nonterminals() {
		sym.useless = !(prodSyms.Has(sym.ident) && reached.Has(sym.ident))
		if sym.useless {
			tracer().Infof("warning: useless non-terminal %s", sym)
			g.uselessNT = append(g.uselessNT, sym)
		}
	}
	for _, r := range g.rules {
		r.useless = r.lhs.useless || !productive[r.ident]
		for _, sym := range r.rhs {
			r.useless = r.useless || sym.useless
		}
		if r.useless {
			tracer().Infof("warning: useless rule %s", r)
			g.uselessRules = append(g.uselessRules, r)
		}
	}
}

// --- Accessors -------------------------------------------------------------

// Name returns the grammar's name.
func (g *Grammar) Name() string {
	return g.name
}

// Start returns the declared (or implicit) start symbol.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// Rule returns rule #i. Rule 0 is the synthetic start rule.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Rules returns all rules, including rule 0. Clients must not modify the slice.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// Size returns the number of rules, including rule 0.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Symbols returns all symbols in ID order.
func (g *Grammar) Symbols() []*Symbol {
	return g.symtab.symbols
}

// Symbol returns the symbol with the given ID.
func (g *Grammar) Symbol(id int) *Symbol {
	if id < 0 || id >= len(g.symtab.symbols) {
		return nil
	}
	return g.symtab.symbols[id]
}

// Lookup finds the symbol for a value, or nil.
func (g *Grammar) Lookup(v Value) *Symbol {
	return g.symtab.Resolve(v)
}

// Terminals returns all terminals in ID order.
func (g *Grammar) Terminals() []*Symbol {
	return g.symtab.terminals()
}

// Nonterminals returns all non-terminals in ID order, starting with the dummy start symbol.
func (g *Grammar) Nonterminals() []*Symbol {
	return g.symtab.nonterminals()
}

// NTBase returns the ID of the first non-terminal, i.e. the number of terminals.
func (g *Grammar) NTBase() int {
	return g.symtab.ntBase
}

// Dummy returns the synthetic start symbol $start.
func (g *Grammar) Dummy() *Symbol {
	return g.symtab.dummy
}

// Anchor returns the end marker $end.
func (g *Grammar) Anchor() *Symbol {
	return g.symtab.anchor
}

// ErrorSymbol returns the reserved error token.
func (g *Grammar) ErrorSymbol() *Symbol {
	return g.symtab.errsym
}

// Pointer returns the location pointer with the given ID.
func (g *Grammar) Pointer(id int) *Pointer {
	return g.ptrs[id]
}

// PointerCount returns the size of the dense pointer space.
func (g *Grammar) PointerCount() int {
	return len(g.ptrs)
}

// ExpectedSRConflicts returns the number of expected S/R conflicts, or -1.
func (g *Grammar) ExpectedSRConflicts() int {
	return g.expectSR
}

// UselessNonterminals returns all useless non-terminals.
func (g *Grammar) UselessNonterminals() []*Symbol {
	return g.uselessNT
}

// UselessRules returns all useless rules.
func (g *Grammar) UselessRules() []*Rule {
	return g.uselessRules
}

// Warnings returns warnings about token declarations.
func (g *Grammar) Warnings() []Warning {
	return g.symtab.declWarns
}

// Dump is a debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.name)
	for _, r := range g.rules {
		tracer().Debugf("%v", r)
	}
	tracer().Debugf("-------------------------------------------")
}
