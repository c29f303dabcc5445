package lr

import (
	"github.com/npillmayer/lalr/grammar"
)

// ComputeDFA computes the NFA if necessary, then lookahead sets, resolves
// conflicts, locates the accept state and selects default actions, in that
// order.
func (c *CFSM) ComputeDFA() error {
	if c.dfaDone {
		return c.dfaErr
	}
	c.dfaDone = true
	c.dfaErr = c.computeDFA()
	if c.dfaErr != nil {
		tracer().Errorf(c.dfaErr.Error())
	}
	return c.dfaErr
}

func (c *CFSM) computeDFA() error {
	if err := c.ComputeNFA(); err != nil {
		return err
	}
	if err := c.computeLookahead(); err != nil {
		return err
	}
	for _, s := range c.states {
		if err := c.resolve(s); err != nil {
			return err
		}
	}
	if err := c.setAccept(); err != nil {
		return err
	}
	for _, s := range c.states {
		selectDefault(s)
	}
	tracer().Infof("DFA for grammar %q: %d S/R conflicts, %d R/R conflicts",
		c.g.Name(), len(c.SRConflicts()), len(c.RRConflicts()))
	return nil
}

func errInternal(s *State, format string, args ...interface{}) error {
	return grammar.Errorf(grammar.ErrInternal, format, args...).WithState(s.ID)
}

func (c *CFSM) resolve(s *State) error {
	switch {
	case s.conflict:
		c.resolveRR(s)
		return c.resolveSR(s)
	case len(s.rrules) == 0:
		for _, tok := range s.stokens {
			s.actions.Put(tok.ID(), Shift(s.Goto(tok).To))
		}
	default: // only reduce is possible, lookahead does not matter
		act := Reduce(s.rrules[0])
		s.defact = &act
	}
	return nil
}

// resolveRR records reduce actions for the lookahead tokens of each reduce
// item. The earlier rule wins a reduce/reduce conflict.
func (c *CFSM) resolveRR(s *State) {
	for _, item := range s.ritems {
		for _, tok := range item.LookaheadTokens(c.g) {
			if act, ok := s.Action(tok); ok {
				s.rrConflict(act.Rule, item.Rule, tok)
			} else {
				s.actions.Put(tok.ID(), Reduce(item.Rule))
			}
		}
	}
}

type srDecision int8

const (
	cantResolve srDecision = iota
	doShift
	doReduce
	doError
)

// resolveSR decides between shifting and reducing for every shift token with
// a competing reduce action.
func (c *CFSM) resolveSR(s *State) error {
	for _, stok := range s.stokens {
		shift := Shift(s.Goto(stok).To)
		act, ok := s.Action(stok)
		if !ok {
			s.actions.Put(stok.ID(), shift)
			continue
		}
		decision, err := c.decideSR(s, stok, act.Rule)
		if err != nil {
			return err
		}
		switch decision {
		case doReduce: // already set
		case doShift:
			s.actions.Put(stok.ID(), shift)
		case doError:
			s.actions.Put(stok.ID(), Error())
		case cantResolve:
			s.actions.Put(stok.ID(), shift)
			s.srConflict(stok, s.SRules(stok), act.Rule)
		}
	}
	return nil
}

func (c *CFSM) decideSR(s *State, stok *grammar.Symbol, rule *grammar.Rule) (srDecision, error) {
	rtok := rule.Precedence()
	if rtok == nil {
		return cantResolve, nil
	}
	rprec, ok := rtok.Precedence()
	if !ok {
		return cantResolve, nil
	}
	sprec, ok := stok.Precedence()
	if !ok {
		return cantResolve, nil
	}
	if rule.SpecifiedPrecedence() != nil {
		c.usedPrec.Insert(rule.ID())
	}
	if rprec > sprec {
		return doReduce, nil
	} else if rprec < sprec {
		return doShift, nil
	}
	switch rtok.Assoc() {
	case grammar.Left:
		return doReduce, nil
	case grammar.Right:
		return doShift, nil
	case grammar.Nonassoc:
		return doError, nil
	}
	return cantResolve, errInternal(s, "%s has precedence but associativity %v", rtok, rtok.Assoc())
}

// setAccept follows from state 0 the goto on the start symbol, then the end
// marker twice. The state reached accepts.
func (c *CFSM) setAccept() error {
	anchor := c.g.Anchor()
	gt := c.S0.Goto(c.g.Start())
	if gt == nil {
		return errInternal(c.S0, "no goto on start symbol %s", c.g.Start())
	}
	init := gt.To
	act, ok := init.Action(anchor)
	if !ok || act.Kind != ShiftAction {
		return errInternal(init, "no shift on %s in state %d", anchor, init.ID)
	}
	targ := act.State
	act, ok = targ.Action(anchor)
	if !ok || act.Kind != ShiftAction {
		return errInternal(targ, "no shift on %s in state %d", anchor, targ.ID)
	}
	acc := act.State
	acc.actions.Clear()
	accept := Accept()
	acc.defact = &accept
	tracer().Debugf("accepting state is %d", acc.ID)
	return nil
}

// selectDefault makes the most frequently used reduce action the default
// action of s and deletes its explicit entries. Ties go to the rule appearing
// first in token order. A state without reduce actions defaults to Error.
func selectDefault(s *State) {
	if s.defact != nil {
		return
	}
	freq := make(map[*grammar.Rule]int)
	var order []*grammar.Rule
	for _, at := range s.Actions() {
		if at.Action.Kind == ReduceAction {
			if freq[at.Action.Rule] == 0 {
				order = append(order, at.Action.Rule)
			}
			freq[at.Action.Rule]++
		}
	}
	if len(order) == 0 {
		act := Error()
		s.defact = &act
		return
	}
	best := order[0]
	for _, r := range order[1:] {
		if freq[r] > freq[best] {
			best = r
		}
	}
	def := Reduce(best)
	for _, at := range s.Actions() {
		if at.Action == def {
			s.actions.Remove(at.Token.ID())
		}
	}
	s.defact = &def
}
