package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

/*
0: $start ::= E $end $end
1: E ::= E '+' T
2: E ::= T
3: T ::= 'n'
*/
func TestSymbolIDs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("n").End()
	g, err := b.Close()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.NTBase() != 4 {
		t.Errorf("expected 4 terminals, have %d", g.NTBase())
	}
	if g.Anchor().ID() != 0 || g.ErrorSymbol().ID() != 1 {
		t.Errorf("expected $end=0 and error=1, have %d and %d", g.Anchor().ID(), g.ErrorSymbol().ID())
	}
	for _, sym := range g.Terminals() {
		if !sym.IsTerminal() || sym.ID() >= g.NTBase() {
			t.Errorf("terminal %s has ID %d", sym, sym.ID())
		}
	}
	for _, sym := range g.Nonterminals() {
		if !sym.IsNonterminal() || sym.ID() < g.NTBase() {
			t.Errorf("non-terminal %s has ID %d", sym, sym.ID())
		}
	}
	if plus := g.Lookup(Literal("+")); plus == nil || plus.ID() != 2 {
		t.Errorf("expected '+' to keep its relative order and get ID 2, is %v", plus)
	}
	if e := g.Lookup(Name("E")); e.ID() != 5 {
		t.Errorf("expected E to get ID 5, has %d", e.ID())
	}
	if g.Symbol(g.Dummy().ID()) != g.Dummy() {
		t.Errorf("symbol lookup by ID failed for %s", g.Dummy())
	}
}

func TestPointerSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("n").End()
	g, _ := b.Close()
	if g.PointerCount() != 12 {
		t.Errorf("expected 12 pointers, have %d", g.PointerCount())
	}
	hashes := []int{0, 4, 8, 10}
	for i, r := range g.Rules() {
		if r.Hash() != hashes[i] {
			t.Errorf("expected rule %d to have hash %d, has %d", i, hashes[i], r.Hash())
		}
		for _, ptr := range r.Pointers() {
			if g.Pointer(ptr.ID()) != ptr {
				t.Errorf("pointer %v not found at %d", ptr, ptr.ID())
			}
		}
	}
	p := g.Rule(1).Pointers()[1]
	if p.Item() != "E ::= E . '+' T" {
		t.Errorf("unexpected item rendition: %s", p.Item())
	}
	if p.Next().Symbol() != g.Lookup(Name("T")) || p.Before(1) != g.Rule(1).Pointers()[0] {
		t.Errorf("pointer navigation broken at %v", p)
	}
	if !g.Rule(0).IsAccept() || g.Rule(1).IsAccept() {
		t.Errorf("expected only rule 0 to be the accept rule")
	}
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").Epsilon()
	b.LHS("S").T("a").N("S").End()
	g, err := b.Close()
	if err != nil {
		t.Fatal(err)
	}
	S := g.Lookup(Name("S"))
	if !S.Nullable() || !S.SelfNull() {
		t.Errorf("expected S to be nullable")
	}
	if !g.Rule(1).Nullable() || g.Rule(2).Nullable() {
		t.Errorf("expected rule 1 to be nullable, rule 2 not")
	}
	if g.Dummy().Nullable() {
		t.Errorf("$start must never be nullable")
	}
}

func TestNullableTransitive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").N("A").N("B").End()
	b.LHS("S").T("x").End()
	b.LHS("A").N("B").End()
	b.LHS("B").Epsilon()
	b.LHS("C").N("C").T("y").End()
	g, _ := b.Close()
	for _, name := range []string{"S", "A", "B"} {
		if !g.Lookup(Name(name)).Nullable() {
			t.Errorf("expected %s to be nullable", name)
		}
	}
	if g.Lookup(Name("A")).SelfNull() {
		t.Errorf("A has no empty rule, should not be self-null")
	}
	if g.Lookup(Name("C")).Nullable() {
		t.Errorf("expected C to be not nullable")
	}
}

func TestExpand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").N("A").End()        // 1
	b.LHS("A").N("A").T("x").End() // 2, left recursive
	b.LHS("A").N("B").End()        // 3
	b.LHS("B").T("y").End()        // 4
	g, err := b.Close()
	if err != nil {
		t.Fatal(err)
	}
	exp := g.Lookup(Name("S")).Expand()
	if len(exp) != 4 {
		t.Fatalf("expected expand(S) to have 4 pointers, has %v", exp)
	}
	for i := 1; i < len(exp); i++ {
		if exp[i-1].ID() >= exp[i].ID() {
			t.Errorf("expand(S) not sorted by pointer ID: %v", exp)
		}
		if !exp[i].IsHead() {
			t.Errorf("expected only rule start pointers in expand(S), have %v", exp[i])
		}
	}
	if len(g.Lookup(Name("B")).Expand()) != 1 {
		t.Errorf("expected expand(B) = { B ::= . 'y' }, is %v", g.Lookup(Name("B")).Expand())
	}
}

func TestRulePrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.DeclarePrecedence(Left, Literal("+"))
	b.DeclarePrecedence(Right, Name("UMINUS"))
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("-").N("E").Prec(Name("UMINUS")).End()
	b.LHS("E").T("n").End()
	g, err := b.Close()
	if err != nil {
		t.Fatal(err)
	}
	plus := g.Lookup(Literal("+"))
	if g.Rule(1).Precedence() != plus {
		t.Errorf("expected rule 1 to inherit precedence of '+', has %v", g.Rule(1).Precedence())
	}
	um := g.Rule(2).SpecifiedPrecedence()
	if um == nil || g.Rule(2).Precedence() != um {
		t.Errorf("expected rule 2 to use %%prec UMINUS")
	}
	p1, _ := plus.Precedence()
	p2, _ := um.Precedence()
	if p1 >= p2 || um.Assoc() != Right {
		t.Errorf("expected UMINUS (right) to bind stronger than '+', have %d and %d", p1, p2)
	}
	if _, ok := g.Lookup(Literal("n")).Precedence(); ok {
		t.Errorf("'n' has no declared precedence")
	}
}

func TestPrecedenceHighFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.DeclarePrecedence(Left, Literal("*"))
	b.DeclarePrecedence(Left, Literal("+"))
	if err := b.EndPrecedence(true); err != nil {
		t.Fatal(err)
	}
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").N("E").T("*").N("E").End()
	b.LHS("E").T("n").End()
	g, _ := b.Close()
	pmul, _ := g.Lookup(Literal("*")).Precedence()
	pplus, _ := g.Lookup(Literal("+")).Precedence()
	if pmul <= pplus {
		t.Errorf("expected '*' to bind stronger than '+', have %d and %d", pmul, pplus)
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Start("S")
	if err := b.Start("S"); !errors.Is(err, ErrStartTwice) {
		t.Errorf("expected start-defined-twice, got %v", err)
	}
	b = NewBuilder("G")
	b.EndPrecedence(false)
	if err := b.EndPrecedence(false); !errors.Is(err, ErrPrecTwice) {
		t.Errorf("expected prec-defined-twice, got %v", err)
	}
	b = NewBuilder("G")
	b.EndPrecedence(false)
	if err := b.DeclarePrecedence(Left, Literal("+")); !errors.Is(err, ErrPrecTwice) {
		t.Errorf("expected prec-defined-twice, got %v", err)
	}
	b = NewBuilder("G")
	b.Convert(Name("NUM"), "tNUM")
	b.EndConvert()
	if err := b.EndConvert(); !errors.Is(err, ErrConvertTwice) {
		t.Errorf("expected convert-defined-twice, got %v", err)
	}
	b = NewBuilder("G")
	if _, err := b.Close(); !errors.Is(err, ErrNoRules) {
		t.Errorf("expected no-rules, got %v", err)
	}
	b = NewBuilder("G")
	if err := b.LHS("$end").T("a").End(); !errors.Is(err, ErrIllegalRule) {
		t.Errorf("expected illegal-rule for reserved LHS, got %v", err)
	}
	if _, err := b.Close(); !errors.Is(err, ErrIllegalRule) {
		t.Errorf("expected Close to report recorded error, got %v", err)
	}
}

func TestAddAfterClose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").T("a").End()
	if _, err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.LHS("S").T("b").End(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected grammar-closed, got %v", err)
	}
	if _, err := b.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected second Close to fail with grammar-closed, got %v", err)
	}
	if b.Intern(Literal("zzz")) != nil {
		t.Errorf("expected closed builder not to intern new symbols")
	}
}

func TestStartWithoutRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Start("X")
	b.LHS("S").T("a").End()
	_, err := b.Close()
	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.Kind != ErrIllegalRule {
		t.Errorf("expected illegal-rule for start symbol without rules, got %v", err)
	}
}

func TestUselessUnreachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").T("a").End()
	b.LHS("U").T("b").End()
	g, err := b.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(g.UselessNonterminals()) != 1 || g.UselessNonterminals()[0].Name() != "U" {
		t.Errorf("expected U to be useless, have %v", g.UselessNonterminals())
	}
	if len(g.UselessRules()) != 1 || g.UselessRules()[0] != g.Rule(2) {
		t.Errorf("expected rule 2 to be useless, have %v", g.UselessRules())
	}
}

func TestUselessUnproductive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").T("a").End()
	b.LHS("S").N("X").End()
	b.LHS("X").N("X").T("b").End()
	g, _ := b.Close()
	if !g.Lookup(Name("X")).Useless() {
		t.Errorf("expected X to be useless, as it cannot derive a terminal string")
	}
	if !g.Rule(2).Useless() || g.Rule(1).Useless() {
		t.Errorf("expected rule 2 to be useless, rule 1 not")
	}
}

func TestNoUselessInAmbiguous(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").N("A").N("A").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	g, _ := b.Close()
	if n := len(g.UselessNonterminals()); n != 0 {
		t.Errorf("expected 0 useless non-terminals, have %d", n)
	}
	if n := len(g.UselessRules()); n != 0 {
		t.Errorf("expected 0 useless rules, have %d", n)
	}
}

func TestEmbeddedAction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").T("a").Mid("mid").T("b").Action("end").End()
	g, err := b.Close()
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 3 {
		t.Fatalf("expected 3 rules, have %d", g.Size())
	}
	emb := g.Rule(1)
	if emb.LHS().Name() != "@1" || !emb.IsEmpty() || emb.Action() != "mid" {
		t.Errorf("expected rule 1 to be the embedded action, is %v", emb)
	}
	if g.Rule(2).Action() != "end" || g.Rule(2).RHS()[1] != emb.LHS() {
		t.Errorf("expected rule 2 to reference @1, is %v", g.Rule(2))
	}
	if g.Start().Name() != "S" {
		t.Errorf("expected start symbol S, is %v", g.Start())
	}
}

func TestDeclarationWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.DeclareTerminal(Name("NUM"), Name("UNUSED"))
	b.LHS("S").N("NUM").N("ID").End()
	g, _ := b.Close()
	if len(g.Warnings()) != 2 {
		t.Errorf("expected 2 declaration warnings, have %v", g.Warnings())
	}
}
