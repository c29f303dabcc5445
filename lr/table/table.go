package table

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lalr/grammar"
	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/lalr/lr/sparse"
)

// Nil denotes holes in tables and absent pointers or defaults.
const Nil = sparse.DefaultNullValue

// Reduction is an entry of the reduce table.
type Reduction struct {
	Len    int         // length of the RHS
	LHS    int         // symbol ID of the LHS
	Action interface{} // action payload of the rule
}

// TransitionTable is the packed parser table for a grammar.
type TransitionTable struct {
	ActionTable   []int
	ActionCheck   []int
	ActionDefault []int // per state
	ActionPointer []int // per state
	GotoTable     []int
	GotoCheck     []int
	GotoDefault   []int // per non-terminal
	GotoPointer   []int // per non-terminal
	TokenTable    map[grammar.Value]int
	TokenNames    []string // all symbols, in ID order
	ReduceTable   []Reduction
	NTBase        int
	ShiftN        int
	ReduceN       int

	actions *sparse.IntMatrix // states x terminals, explicit actions
	gotos   *sparse.IntMatrix // non-terminals x states
}

// Generate creates the transition table for an automaton. It computes the DFA
// if this has not been done before.
func Generate(c *lr.CFSM) (*TransitionTable, error) {
	if err := c.ComputeDFA(); err != nil {
		return nil, err
	}
	g := c.Grammar()
	t := &TransitionTable{
		NTBase:     g.NTBase(),
		ShiftN:     c.Size(),
		ReduceN:    g.Size(),
		TokenTable: make(map[grammar.Value]int),
	}
	for _, sym := range g.Terminals() {
		t.TokenTable[sym.Value()] = sym.ID()
	}
	for _, sym := range g.Symbols() {
		t.TokenNames = append(t.TokenNames, sym.Name())
	}
	t.ReduceTable = make([]Reduction, g.Size())
	for _, r := range g.Rules()[1:] {
		t.ReduceTable[r.ID()] = Reduction{Len: r.Len(), LHS: r.LHS().ID(), Action: r.Action()}
	}
	if err := t.genActionTables(c); err != nil {
		return nil, err
	}
	t.genGotoTables(c)
	tracer().Infof("transition table for %q: action %d cells, goto %d cells",
		g.Name(), len(t.ActionTable), len(t.GotoTable))
	return t, nil
}

func (t *TransitionTable) actionID(s *lr.State, a lr.Action) (int, error) {
	switch a.Kind {
	case lr.ShiftAction:
		return a.State.ID, nil
	case lr.ReduceAction:
		return -a.Rule.ID(), nil
	case lr.AcceptAction:
		return t.ShiftN, nil
	case lr.ErrorAction:
		return -t.ReduceN, nil
	}
	return 0, grammar.Errorf(grammar.ErrInternal, "unknown action kind %v in state %d",
		a.Kind, s.ID).WithState(s.ID)
}

func (t *TransitionTable) genActionTables(c *lr.CFSM) error {
	t.actions = sparse.NewIntMatrix(c.Size(), t.NTBase, Nil)
	t.ActionPointer = make([]int, c.Size())
	var entries []*entry
	for _, s := range c.States() {
		def, err := t.actionID(s, s.DefaultAction())
		if err != nil {
			return err
		}
		t.ActionDefault = append(t.ActionDefault, def)
		acts := s.Actions()
		if len(acts) == 0 {
			t.ActionPointer[s.ID] = Nil
			continue
		}
		for _, at := range acts {
			id, err := t.actionID(s, at.Action)
			if err != nil {
				return err
			}
			t.actions.Set(s.ID, at.Token.ID(), id)
		}
		vector := t.actions.Row(s.ID)
		if e := newEntry(vector, s.ID, s.ID); e != nil {
			entries = append(entries, e)
		}
	}
	t.ActionTable, t.ActionCheck = pack(entries, t.ActionPointer)
	return nil
}

func (t *TransitionTable) genGotoTables(c *lr.CFSM) {
	g := c.Grammar()
	nonterms := g.Nonterminals()
	t.gotos = sparse.NewIntMatrix(len(nonterms), c.Size(), Nil)
	t.GotoPointer = make([]int, len(nonterms))
	t.GotoDefault = make([]int, len(nonterms))
	var entries []*entry
	for n, nt := range nonterms {
		freq := make([]int, c.Size())
		for _, s := range c.States() {
			if gt := s.Goto(nt); gt != nil {
				t.gotos.Set(n, s.ID, gt.To.ID)
				freq[gt.To.ID]++
			}
		}
		def, max := Nil, 1
		for st, f := range freq {
			if f > max {
				def, max = st, f
			}
		}
		t.GotoDefault[n] = def
		vector := t.gotos.Row(n)
		for i, v := range vector {
			if v == def {
				vector[i] = Nil
			}
		}
		e := newEntry(vector, n, n)
		if e == nil { // all values are default
			t.GotoPointer[n] = Nil
			continue
		}
		entries = append(entries, e)
	}
	t.GotoTable, t.GotoCheck = pack(entries, t.GotoPointer)
}

// Action returns the action ID for a state and a terminal.
func (t *TransitionTable) Action(state, token int) int {
	if i := t.ActionPointer[state]; i != Nil {
		i += token
		if i >= 0 && i < len(t.ActionTable) && t.ActionCheck[i] == state && t.ActionTable[i] != Nil {
			return t.ActionTable[i]
		}
	}
	return t.ActionDefault[state]
}

// Goto returns the state to go to for a non-terminal (indexed from NTBase)
// after a reduction uncovered state. Returns Nil if there is no such state.
func (t *TransitionTable) Goto(nonterminal, state int) int {
	if i := t.GotoPointer[nonterminal]; i != Nil {
		i += state
		if i >= 0 && i < len(t.GotoTable) && t.GotoCheck[i] == nonterminal && t.GotoTable[i] != Nil {
			return t.GotoTable[i]
		}
	}
	return t.GotoDefault[nonterminal]
}

// ActionMatrix returns the uncompacted table of explicit actions (states x terminals).
func (t *TransitionTable) ActionMatrix() *sparse.IntMatrix {
	return t.actions
}

// GotoMatrix returns the uncompacted goto table (non-terminals x states).
func (t *TransitionTable) GotoMatrix() *sparse.IntMatrix {
	return t.gotos
}

// ActionString decodes an action ID.
func (t *TransitionTable) ActionString(id int) string {
	switch {
	case id == t.ShiftN:
		return "accept"
	case id == -t.ReduceN:
		return "error"
	case id > 0:
		return fmt.Sprintf("shift %d", id)
	case id < 0:
		return fmt.Sprintf("reduce %d", -id)
	}
	return "?"
}

type fingerprint struct {
	ActionTable   []int
	ActionCheck   []int
	ActionDefault []int
	ActionPointer []int
	GotoTable     []int
	GotoCheck     []int
	GotoDefault   []int
	GotoPointer   []int
	TokenNames    []string
	ReduceLen     []int
	ReduceLHS     []int
	NTBase        int
	ShiftN        int
	ReduceN       int
}

// Fingerprint returns a hash over all the tables. Two builds for the same
// grammar have equal fingerprints.
func (t *TransitionTable) Fingerprint() (string, error) {
	fp := fingerprint{
		ActionTable:   t.ActionTable,
		ActionCheck:   t.ActionCheck,
		ActionDefault: t.ActionDefault,
		ActionPointer: t.ActionPointer,
		GotoTable:     t.GotoTable,
		GotoCheck:     t.GotoCheck,
		GotoDefault:   t.GotoDefault,
		GotoPointer:   t.GotoPointer,
		TokenNames:    t.TokenNames,
		NTBase:        t.NTBase,
		ShiftN:        t.ShiftN,
		ReduceN:       t.ReduceN,
	}
	for _, r := range t.ReduceTable {
		fp.ReduceLen = append(fp.ReduceLen, r.Len)
		fp.ReduceLHS = append(fp.ReduceLHS, r.LHS)
	}
	return structhash.Hash(fp, 1)
}

// Dump is a debugging helper
func (t *TransitionTable) Dump() {
	tracer().Debugf("action table  = %v", t.ActionTable)
	tracer().Debugf("action check  = %v", t.ActionCheck)
	tracer().Debugf("action ptr    = %v", t.ActionPointer)
	tracer().Debugf("action def    = %v", t.ActionDefault)
	tracer().Debugf("goto table    = %v", t.GotoTable)
	tracer().Debugf("goto check    = %v", t.GotoCheck)
	tracer().Debugf("goto ptr      = %v", t.GotoPointer)
	tracer().Debugf("goto def      = %v", t.GotoDefault)
}
