package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/lalr/grammar"
)

// SRConflict is an unresolved shift/reduce conflict. The conflict has been
// decided to shift.
type SRConflict struct {
	State  *State
	Symbol *grammar.Symbol    // the shift token
	SRules []*grammar.Pointer // pointers directing to shift
	RRule  *grammar.Rule      // the overridden reduce rule
}

func (c *SRConflict) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("shift/reduce conflict in state %d on %s, after the following input:\n    %s\n",
		c.State.ID, c.Symbol, pathString(c.State.path)))
	if len(c.SRules) == 1 {
		b.WriteString("The following rule directs me to shift:\n")
	} else {
		b.WriteString("The following rules direct me to shift:\n")
	}
	for _, ptr := range c.SRules {
		b.WriteString(fmt.Sprintf("    %s\n", ptr.Item()))
	}
	b.WriteString("The following rule directs me to reduce:\n")
	b.WriteString(fmt.Sprintf("    %s", c.RRule.Pointers()[c.RRule.Len()].Item()))
	return b.String()
}

// RRConflict is an unresolved reduce/reduce conflict. The conflict has been
// decided to reduce by the earlier rule High.
type RRConflict struct {
	StateID int
	High    *grammar.Rule
	Low     *grammar.Rule
	Token   *grammar.Symbol
}

func (c *RRConflict) String() string {
	return fmt.Sprintf("reduce/reduce conflict in state %d on %s between rule %d and rule %d (reducing by rule %d)",
		c.StateID, c.Token, c.High.ID(), c.Low.ID(), c.High.ID())
}

func (s *State) srConflict(tok *grammar.Symbol, srules []*grammar.Pointer, rrule *grammar.Rule) {
	c := &SRConflict{State: s, Symbol: tok, SRules: srules, RRule: rrule}
	tracer().Infof("%v", c)
	s.srConflicts.Put(tok.ID(), c)
}

func (s *State) rrConflict(high, low *grammar.Rule, tok *grammar.Symbol) {
	c := &RRConflict{StateID: s.ID, High: high, Low: low, Token: tok}
	tracer().Infof("%v", c)
	var confl []*RRConflict
	if prev, ok := s.rrConflicts.Get(tok.ID()); ok {
		confl = prev.([]*RRConflict)
	}
	s.rrConflicts.Put(tok.ID(), append(confl, c))
}

// SRConflicts returns all unresolved shift/reduce conflicts, in state order.
func (c *CFSM) SRConflicts() []*SRConflict {
	var confl []*SRConflict
	for _, s := range c.states {
		confl = append(confl, s.SRConflicts()...)
	}
	return confl
}

// RRConflicts returns all unresolved reduce/reduce conflicts, in state order.
func (c *CFSM) RRConflicts() []*RRConflict {
	var confl []*RRConflict
	for _, s := range c.states {
		confl = append(confl, s.RRConflicts()...)
	}
	return confl
}

// ShouldReportSRConflicts is true if there are shift/reduce conflicts and their
// number differs from the number expected by the grammar.
func (c *CFSM) ShouldReportSRConflicts() bool {
	n := len(c.SRConflicts())
	return n > 0 && n != c.g.ExpectedSRConflicts()
}

// UselessPrecedence returns the rules with an explicit precedence which never
// decided a shift/reduce conflict.
func (c *CFSM) UselessPrecedence() []*grammar.Rule {
	var rules []*grammar.Rule
	for _, r := range c.g.Rules() {
		if r.SpecifiedPrecedence() != nil && !c.usedPrec.Has(r.ID()) {
			rules = append(rules, r)
		}
	}
	return rules
}
