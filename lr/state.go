package lr

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lalr/grammar"
	"golang.org/x/tools/container/intsets"
)

// State is a state of the CFSM. It is identified by its core, the set of
// location pointers leading into it.
type State struct {
	ID      int
	g       *grammar.Grammar
	core    []*grammar.Pointer
	closure []*grammar.Pointer
	path    []*grammar.Symbol

	gotos   *treemap.Map // symbol ID -> *Goto
	actions *treemap.Map // token ID -> Action
	defact  *Action

	stokens  []*grammar.Symbol
	srules   map[int][]*grammar.Pointer
	rrules   []*grammar.Rule
	conflict bool
	ritems   []*Item

	srConflicts *treemap.Map // token ID -> *SRConflict
	rrConflicts *treemap.Map // token ID -> []*RRConflict, in order of detection
}

// Goto is an edge of the CFSM. Edges labeled by a non-terminal are numbered
// consecutively; terminal edges have ID -1.
type Goto struct {
	ID     int
	Symbol *grammar.Symbol
	From   *State
	To     *State
}

func (gt *Goto) String() string {
	return fmt.Sprintf("(%d-%s->%d)", gt.From.ID, gt.Symbol, gt.To.ID)
}

func newState(id int, g *grammar.Grammar, core *intsets.Sparse, path []*grammar.Symbol) *State {
	s := &State{
		ID:          id,
		g:           g,
		path:        path,
		gotos:       treemap.NewWith(utils.IntComparator),
		actions:     treemap.NewWith(utils.IntComparator),
		srConflicts: treemap.NewWith(utils.IntComparator),
		rrConflicts: treemap.NewWith(utils.IntComparator),
	}
	for _, id := range core.AppendTo(nil) {
		s.core = append(s.core, g.Pointer(id))
	}
	s.classify()
	return s
}

// Core returns the location pointers of the state's core, sorted by pointer ID.
func (s *State) Core() []*grammar.Pointer {
	return s.core
}

// Closure returns the core plus all rule start pointers reachable by expanding
// non-terminals, sorted by pointer ID. Rules which are useless are left out.
func (s *State) Closure() []*grammar.Pointer {
	if s.closure != nil {
		return s.closure
	}
	var set intsets.Sparse
	for _, ptr := range s.core {
		set.Insert(ptr.ID())
		if sym := ptr.Symbol(); sym != nil && sym.IsNonterminal() {
			for _, p := range sym.Expand() {
				if !p.Rule().Useless() {
					set.Insert(p.ID())
				}
			}
		}
	}
	ids := set.AppendTo(nil)
	s.closure = make([]*grammar.Pointer, len(ids))
	for i, id := range ids {
		s.closure[i] = s.g.Pointer(id)
	}
	return s.closure
}

// classify computes shift tokens, shift rules, reduce rules and the conflict flag.
func (s *State) classify() {
	toks := treeset.NewWith(utils.IntComparator)
	s.srules = make(map[int][]*grammar.Pointer)
	for _, ptr := range s.Closure() {
		if ptr.IsReduce() {
			s.rrules = append(s.rrules, ptr.Rule())
			continue
		}
		if sym := ptr.Symbol(); sym.IsTerminal() {
			toks.Add(sym.ID())
			s.srules[sym.ID()] = append(s.srules[sym.ID()], ptr)
		}
	}
	for _, id := range toks.Values() {
		s.stokens = append(s.stokens, s.g.Symbol(id.(int)))
	}
	s.conflict = len(s.rrules) > 1 ||
		toks.Contains(s.g.ErrorSymbol().ID()) ||
		(len(s.stokens) > 0 && len(s.rrules) > 0)
	if s.conflict {
		for _, r := range s.rrules {
			s.ritems = append(s.ritems, newItem(r, s.g.NTBase()))
		}
	}
}

// Path returns a sample sequence of symbols leading from state 0 to s.
func (s *State) Path() []*grammar.Symbol {
	return s.path
}

// Gotos returns the outgoing edges of s, ordered by symbol ID.
func (s *State) Gotos() []*Goto {
	gotos := make([]*Goto, 0, s.gotos.Size())
	it := s.gotos.Iterator()
	for it.Next() {
		gotos = append(gotos, it.Value().(*Goto))
	}
	return gotos
}

// Goto returns the outgoing edge for sym, or nil.
func (s *State) Goto(sym *grammar.Symbol) *Goto {
	if gt, ok := s.gotos.Get(sym.ID()); ok {
		return gt.(*Goto)
	}
	return nil
}

// STokens returns the terminals which may be shifted in s, ordered by ID.
func (s *State) STokens() []*grammar.Symbol {
	return s.stokens
}

// SRules returns the pointers of s which direct to shift tok.
func (s *State) SRules(tok *grammar.Symbol) []*grammar.Pointer {
	return s.srules[tok.ID()]
}

// RRules returns the rules which may be reduced in s, ordered by rule ID.
func (s *State) RRules() []*grammar.Rule {
	return s.rrules
}

// Conflict is true if s would be ambiguous without lookahead.
func (s *State) Conflict() bool {
	return s.conflict
}

// RItems returns the reduce items of a conflict state, one per reduce rule.
// Non-conflict states have no items.
func (s *State) RItems() []*Item {
	return s.ritems
}

func (s *State) ritem(r *grammar.Rule) *Item {
	for _, item := range s.ritems {
		if item.Rule == r {
			return item
		}
	}
	return nil
}

// Action returns the explicit action of s for terminal tok.
func (s *State) Action(tok *grammar.Symbol) (Action, bool) {
	return s.action(tok.ID())
}

func (s *State) action(tokID int) (Action, bool) {
	if a, ok := s.actions.Get(tokID); ok {
		return a.(Action), true
	}
	return Action{}, false
}

// ActionToken is an explicit action together with its lookahead terminal.
type ActionToken struct {
	Token  *grammar.Symbol
	Action Action
}

// Actions returns the explicit actions of s, ordered by token ID.
func (s *State) Actions() []ActionToken {
	acts := make([]ActionToken, 0, s.actions.Size())
	it := s.actions.Iterator()
	for it.Next() {
		acts = append(acts, ActionToken{
			Token:  s.g.Symbol(it.Key().(int)),
			Action: it.Value().(Action),
		})
	}
	return acts
}

// DefaultAction returns the action taken for every terminal without an
// explicit action. Valid after the DFA has been computed.
func (s *State) DefaultAction() Action {
	if s.defact == nil {
		return Action{}
	}
	return *s.defact
}

// SRConflicts returns the unresolved shift/reduce conflicts of s, ordered by token ID.
func (s *State) SRConflicts() []*SRConflict {
	confl := make([]*SRConflict, 0, s.srConflicts.Size())
	for _, c := range s.srConflicts.Values() {
		confl = append(confl, c.(*SRConflict))
	}
	return confl
}

// RRConflicts returns the unresolved reduce/reduce conflicts of s, ordered by
// token ID, then by losing rule.
func (s *State) RRConflicts() []*RRConflict {
	var confl []*RRConflict
	for _, c := range s.rrConflicts.Values() {
		confl = append(confl, c.([]*RRConflict)...)
	}
	return confl
}

func (s *State) String() string {
	return fmt.Sprintf("<state %d>", s.ID)
}

// Dump is a debugging helper
func (s *State) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, ptr := range s.Closure() {
		tracer().Debugf("   %s", ptr.Item())
	}
	for _, gt := range s.Gotos() {
		tracer().Debugf("   goto %v", gt)
	}
	for _, at := range s.Actions() {
		tracer().Debugf("   on %s: %v", at.Token, at.Action)
	}
	tracer().Debugf("   default: %v", s.DefaultAction())
	tracer().Debugf("-------------------------")
}

func pathString(path []*grammar.Symbol) string {
	var b bytes.Buffer
	for i, sym := range path {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.String())
	}
	return b.String()
}
