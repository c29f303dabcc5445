package grammar

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// SymbolTable interns the symbols of one grammar. Every Builder owns its own
// table; there is no process-wide symbol cache.
type SymbolTable struct {
	table   map[Value]*Symbol
	symbols []*Symbol // creation order until fixed, then ID order

	dummy  *Symbol
	anchor *Symbol
	errsym *Symbol

	tokenList []*Symbol // declared terminals
	precTable []precLine
	endPrec   bool
	endConv   bool
	ntBase    int
	fixed     bool
	declWarns []Warning
}

type precLine struct {
	assoc Assoc
	syms  []*Symbol
}

// newSymbolTable creates a symbol table with the reserved symbols pre-defined.
func newSymbolTable() *SymbolTable {
	symtab := &SymbolTable{
		table: make(map[Value]*Symbol),
	}
	symtab.dummy = symtab.intern(DummyValue, true)
	symtab.anchor = symtab.intern(AnchorValue, true) // will get ID 0
	symtab.errsym = symtab.intern(ErrorValue, false) // will get ID 1
	symtab.anchor.conv = "false"
	return symtab
}

// Resolve finds a symbol in the table. Returns nil if v has not been interned.
func (t *SymbolTable) Resolve(v Value) *Symbol {
	return t.table[v]
}

func (t *SymbolTable) intern(v Value, dummy bool) *Symbol {
	sym := t.table[v]
	if sym == nil { // if not already there, insert it
		sym = newSymbol(v, dummy)
		t.table[v] = sym
		t.symbols = append(t.symbols, sym)
	}
	return sym
}

// Size counts the symbols in the table.
func (t *SymbolTable) Size() int {
	return len(t.symbols)
}

// Each iterates over all symbols in table order.
func (t *SymbolTable) Each(mapper func(*Symbol)) {
	for _, sym := range t.symbols {
		mapper(sym)
	}
}

func (t *SymbolTable) registerPrec(assoc Assoc, syms []*Symbol) error {
	if t.endPrec {
		return Errorf(ErrPrecTwice, "'prec' block is defined twice")
	}
	if assoc != Left && assoc != Right && assoc != Nonassoc {
		return Errorf(ErrIllegalRule, "illegal associativity %d for precedence declaration", assoc)
	}
	t.precTable = append(t.precTable, precLine{assoc: assoc, syms: syms})
	return nil
}

func (t *SymbolTable) endRegisterPrec(highFirst bool) error {
	if t.endPrec {
		return Errorf(ErrPrecTwice, "'prec' block is defined twice")
	}
	t.endPrec = true
	top := len(t.precTable) - 1
	for i, line := range t.precTable {
		for _, sym := range line.syms {
			sym.assoc = line.assoc
			if highFirst {
				sym.prec = top - i
			} else {
				sym.prec = i
			}
		}
	}
	return nil
}

func (t *SymbolTable) registerConv(sym *Symbol, conv string) error {
	if t.endConv {
		return Errorf(ErrConvertTwice, "'convert' block is defined twice")
	}
	sym.conv = conv
	return nil
}

func (t *SymbolTable) endRegisterConv() error {
	if t.endConv {
		return Errorf(ErrConvertTwice, "'convert' block is defined twice")
	}
	t.endConv = true
	return nil
}

// fix partitions the symbols into terminals and non-terminals, keeping their
// relative order, and assigns the final IDs.
func (t *SymbolTable) fix() {
	var term, nt []*Symbol
	for _, sym := range t.symbols {
		if sym.IsTerminal() {
			term = append(term, sym)
		} else {
			nt = append(nt, sym)
		}
	}
	t.symbols = append(term, nt...)
	t.ntBase = len(term)
	for i, sym := range t.symbols {
		sym.ident = i
	}
	t.fixed = true
}

// checkDeclared compares the declared terminals with the terminals actually
// used. Has to be called after symbol locations are known.
func (t *SymbolTable) checkDeclared() {
	if t.tokenList == nil {
		return
	}
	for _, sym := range t.tokenList {
		if !sym.IsTerminal() {
			t.warnf(sym, "terminal %s declared but used as non-terminal", sym)
		} else if len(sym.locate) == 0 {
			t.warnf(sym, "terminal %s declared but not used", sym)
		}
	}
	for _, sym := range t.symbols[2:t.ntBase] {
		if !sym.value.Literal && !slices.Contains(t.tokenList, sym) {
			t.warnf(sym, "terminal %s used but not declared", sym)
		}
	}
}

// Warning is a non-fatal finding about the declaration of a symbol.
type Warning struct {
	Symbol *Symbol
	Msg    string
}

func (w Warning) String() string {
	return w.Msg
}

func (t *SymbolTable) warnf(sym *Symbol, format string, args ...interface{}) {
	tracer().Infof("warning: "+format, args...)
	t.declWarns = append(t.declWarns, Warning{Symbol: sym, Msg: fmt.Sprintf(format, args...)})
}

func (t *SymbolTable) terminals() []*Symbol {
	return t.symbols[:t.ntBase]
}

func (t *SymbolTable) nonterminals() []*Symbol {
	return t.symbols[t.ntBase:]
}
