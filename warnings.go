package lalr

import (
	"fmt"
	"sort"

	"github.com/cznic/sortutil"
	"github.com/npillmayer/lalr/grammar"
	"github.com/npillmayer/lalr/lr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WarningKind categorizes warnings.
type WarningKind int8

// Kinds of warnings
const (
	DeclarationWarning WarningKind = iota
	UselessNonterminal
	UselessRule
	UselessPrecedence
	SRConflict
	RRConflict
)

var kindNames = []string{"declaration", "useless non-terminal", "useless rule",
	"useless precedence", "shift/reduce conflict", "reduce/reduce conflict"}

func (k WarningKind) String() string {
	return kindNames[k]
}

// Warning is a non-fatal finding while creating tables.
type Warning struct {
	Kind    WarningKind
	Title   string
	Details string
}

func (w Warning) String() string {
	if w.Details == "" {
		return "Warning: " + w.Title
	}
	return "Warning: " + w.Title + "\n" + w.Details
}

// Warnings categorizes warnings according to the entity they relate to: a
// symbol, a rule or a state.
type Warnings struct {
	symbols map[int][]Warning
	rules   map[int][]Warning
	states  map[int][]Warning
}

func newWarnings() *Warnings {
	return &Warnings{
		symbols: make(map[int][]Warning),
		rules:   make(map[int][]Warning),
		states:  make(map[int][]Warning),
	}
}

func (w *Warnings) addForSymbol(sym *grammar.Symbol, warning Warning) {
	w.symbols[sym.ID()] = append(w.symbols[sym.ID()], warning)
}

func (w *Warnings) addForRule(r *grammar.Rule, warning Warning) {
	w.rules[r.ID()] = append(w.rules[r.ID()], warning)
}

func (w *Warnings) addForState(s *lr.State, warning Warning) {
	w.states[s.ID] = append(w.states[s.ID], warning)
}

// ForSymbol returns the warnings for the symbol with the given ID.
func (w *Warnings) ForSymbol(id int) []Warning {
	return w.symbols[id]
}

// ForRule returns the warnings for the rule with the given ID.
func (w *Warnings) ForRule(id int) []Warning {
	return w.rules[id]
}

// ForState returns the warnings for the state with the given ID.
func (w *Warnings) ForState(id int) []Warning {
	return w.states[id]
}

// Each iterates over all warnings: symbol warnings first, then rule warnings,
// then state warnings, each ordered by ID.
func (w *Warnings) Each(f func(Warning)) {
	for _, m := range []map[int][]Warning{w.symbols, w.rules, w.states} {
		keys := maps.Keys(m)
		slices.Sort(keys)
		for _, k := range keys {
			for _, warning := range m[k] {
				f(warning)
			}
		}
	}
}

// Len returns the number of warnings.
func (w *Warnings) Len() int {
	n := 0
	w.Each(func(Warning) { n++ })
	return n
}

// Count returns the number of warnings of a kind.
func (w *Warnings) Count(kind WarningKind) int {
	n := 0
	w.Each(func(warning Warning) {
		if warning.Kind == kind {
			n++
		}
	})
	return n
}

// ConflictStates returns the IDs of states with warnings about conflicts, in
// ascending order.
func (w *Warnings) ConflictStates() []int {
	var ids []int
	for id, ws := range w.states {
		for _, warning := range ws {
			if warning.Kind == SRConflict || warning.Kind == RRConflict {
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	n := sortutil.Dedupe(sort.IntSlice(ids))
	return ids[:n]
}

func collectWarnings(g *grammar.Grammar, dfa *lr.CFSM) *Warnings {
	w := newWarnings()
	for _, dw := range g.Warnings() {
		w.addForSymbol(dw.Symbol, Warning{Kind: DeclarationWarning, Title: dw.Msg})
	}
	for _, sym := range g.UselessNonterminals() {
		w.addForSymbol(sym, Warning{
			Kind:  UselessNonterminal,
			Title: fmt.Sprintf("Useless non-terminal %s cannot be part of a valid parse tree", sym),
		})
	}
	for _, r := range g.UselessRules() {
		w.addForRule(r, Warning{
			Kind:  UselessRule,
			Title: fmt.Sprintf("Useless rule %v can never be reduced", r),
		})
	}
	for _, r := range dfa.UselessPrecedence() {
		w.addForRule(r, Warning{
			Kind: UselessPrecedence,
			Title: fmt.Sprintf("The explicit precedence %s on rule %d does not resolve any conflict",
				r.SpecifiedPrecedence(), r.ID()),
		})
	}
	for _, sr := range dfa.SRConflicts() {
		w.addForState(sr.State, Warning{
			Kind:    SRConflict,
			Title:   fmt.Sprintf("Shift/reduce conflict on %s in state %d", sr.Symbol, sr.State.ID),
			Details: sr.String(),
		})
	}
	for _, rr := range dfa.RRConflicts() {
		w.addForState(dfa.State(rr.StateID), Warning{
			Kind:    RRConflict,
			Title:   fmt.Sprintf("Reduce/reduce conflict on %s in state %d", rr.Token, rr.StateID),
			Details: rr.String(),
		})
	}
	return w
}
