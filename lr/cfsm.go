package lr

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/lalr/grammar"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/container/intsets"
)

// CFSM is the characteristic finite state machine for a LALR(1) grammar.
// Clients create it for a closed grammar, then call ComputeNFA for the
// LR(0) state diagram or ComputeDFA for the conflict-resolved automaton.
// Both are computed at most once.
type CFSM struct {
	g      *grammar.Grammar
	states []*State
	cache  map[string]*State // core -> state
	gotos  []*Goto           // non-terminal gotos, indexed by goto ID
	S0     *State            // start state

	usedPrec intsets.Sparse // rules whose explicit precedence decided a conflict

	nfaDone, dfaDone bool
	nfaErr, dfaErr   error
}

// NewCFSM creates an empty CFSM for grammar g.
func NewCFSM(g *grammar.Grammar) *CFSM {
	return &CFSM{
		g:     g,
		cache: make(map[string]*State),
	}
}

// Grammar returns the grammar of the CFSM.
func (c *CFSM) Grammar() *grammar.Grammar {
	return c.g
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*State {
	return c.states
}

// State returns the state with the given ID, or nil.
func (c *CFSM) State(id int) *State {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// NonterminalGotos returns all edges labeled by a non-terminal, ordered by goto ID.
func (c *CFSM) NonterminalGotos() []*Goto {
	return c.gotos
}

// ComputeNFA builds the states of the automaton breadth-first from state 0,
// merging states with equal cores.
func (c *CFSM) ComputeNFA() error {
	if c.nfaDone {
		return c.nfaErr
	}
	c.nfaDone = true
	tracer().Debugf("=== build CFSM ==================================================")
	var core0 intsets.Sparse
	core0.Insert(c.g.Rule(0).Pointers()[0].ID())
	worklist := arraylist.New()
	c.S0, _ = c.coreToState(&core0, nil, nil)
	worklist.Add(c.S0)
	for worklist.Size() > 0 {
		x, _ := worklist.Get(0)
		worklist.Remove(0)
		if err := c.generate(x.(*State), worklist); err != nil {
			tracer().Errorf(err.Error())
			c.nfaErr = err
			return err
		}
	}
	tracer().Infof("CFSM for grammar %q has %d states, %d non-terminal gotos",
		c.g.Name(), len(c.states), len(c.gotos))
	return nil
}

// generate creates the successor states of s. Successors are created in the
// order of first appearance of their symbol within the closure of s.
// A state with a single closure item never is its own successor, as the
// successor core holds the advanced pointer; generate fails with
// ErrInfiniteRecursion if this is violated.
func (c *CFSM) generate(s *State, worklist *arraylist.List) error {
	var order []*grammar.Symbol
	table := make(map[*grammar.Symbol]*intsets.Sparse)
	for _, ptr := range s.Closure() {
		if ptr.IsReduce() {
			continue
		}
		sym := ptr.Symbol()
		core, ok := table[sym]
		if !ok {
			core = &intsets.Sparse{}
			table[sym] = core
			order = append(order, sym)
		}
		core.Insert(ptr.Next().ID())
	}
	for _, sym := range order {
		dest, isnew := c.coreToState(table[sym], s, sym)
		if isnew {
			worklist.Add(dest)
		}
		gt := &Goto{ID: -1, Symbol: sym, From: s, To: dest}
		if sym.IsNonterminal() {
			gt.ID = len(c.gotos)
			c.gotos = append(c.gotos, gt)
		}
		s.gotos.Put(sym.ID(), gt)
		tracer().Debugf("goto %v", gt)
		if s.ID == dest.ID && len(s.Closure()) == 1 {
			r := s.core[0].Rule()
			return grammar.Errorf(grammar.ErrInfiniteRecursion,
				"infinite recursion in rule: %v", r).WithRule(r).WithState(s.ID)
		}
	}
	return nil
}

// coreToState returns the state for a core, creating it if necessary.
func (c *CFSM) coreToState(core *intsets.Sparse, from *State, sym *grammar.Symbol) (*State, bool) {
	key := core.String()
	if s, ok := c.cache[key]; ok {
		return s, false
	}
	var path []*grammar.Symbol
	if from != nil {
		path = append(slices.Clone(from.path), sym)
	}
	s := newState(len(c.states), c.g, core, path)
	c.states = append(c.states, s)
	c.cache[key] = s
	return s, true
}

// path is the sequence of gotos taken when starting from s and following
// the RHS of r to its end.
func (c *CFSM) path(s *State, r *grammar.Rule) ([]*Goto, error) {
	path := make([]*Goto, 0, r.Len())
	for _, sym := range r.RHS() {
		gt := s.Goto(sym)
		if gt == nil {
			return nil, grammar.Errorf(grammar.ErrInternal,
				"no goto on %s from state %d while following rule %v", sym, s.ID, r).
				WithRule(r).WithState(s.ID)
		}
		path = append(path, gt)
		s = gt.To
	}
	return path, nil
}

// Dump is a debugging helper
func (c *CFSM) Dump() {
	for _, s := range c.states {
		s.Dump()
	}
}
