package lr

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/lalr/grammar"
)

// ActionKind is the type of a parser action.
type ActionKind int8

// Kinds of parser actions.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
	ErrorAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	case ErrorAction:
		return "error"
	}
	return "none"
}

// Action is a parser action: shift to a state, reduce by a rule, accept or
// signal a parse error. Actions are comparable with ==.
type Action struct {
	Kind  ActionKind
	State *State        // target state of a shift
	Rule  *grammar.Rule // rule of a reduce
}

// Shift creates a shift action to state s.
func Shift(s *State) Action {
	return Action{Kind: ShiftAction, State: s}
}

// Reduce creates a reduce action for rule r.
func Reduce(r *grammar.Rule) Action {
	return Action{Kind: ReduceAction, Rule: r}
}

// Accept is the action of the accepting state.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// Error is the action for explicit parse errors (non-associative operators).
func Error() Action {
	return Action{Kind: ErrorAction}
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("shift %d", a.State.ID)
	case ReduceAction:
		return fmt.Sprintf("reduce %d", a.Rule.ID())
	}
	return a.Kind.String()
}

// Item is an LALR(1) item of a conflict state: a reducible rule and the
// terminals which may follow the reduction.
type Item struct {
	Rule      *grammar.Rule
	Lookahead *bitset.BitSet // indexed by terminal ID
}

func newItem(r *grammar.Rule, termcnt int) *Item {
	return &Item{Rule: r, Lookahead: bitset.New(uint(termcnt))}
}

// LookaheadTokens returns the lookahead terminals in ascending ID order.
func (it *Item) LookaheadTokens(g *grammar.Grammar) []*grammar.Symbol {
	var toks []*grammar.Symbol
	for i, ok := it.Lookahead.NextSet(0); ok; i, ok = it.Lookahead.NextSet(i + 1) {
		toks = append(toks, g.Symbol(int(i)))
	}
	return toks
}

func (it *Item) String() string {
	return fmt.Sprintf("[%v, %v]", it.Rule, it.Lookahead)
}
