package lr

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/lalr/grammar"
)

// lookback relates a non-terminal goto to the state in which rule is reduced
// before taking the goto.
type lookback struct {
	gt    *Goto
	rule  *grammar.Rule
	state *State
}

// computeLookahead attaches lookahead sets to the reduce items of conflict
// states. The algorithm is the one of bison 1.26: first compute the terminals
// directly read after each non-terminal goto (looking past nullable
// non-terminals), then propagate along the includes relation.
func (c *CFSM) computeLookahead() error {
	gotos := c.gotos
	termcnt := uint(c.g.NTBase())
	follow := make([]*bitset.BitSet, len(gotos))
	lookPast := newDigraph(len(gotos))
	for _, gt := range gotos {
		follow[gt.ID] = bitset.New(termcnt)
		for _, next := range gt.To.Gotos() {
			if next.Symbol.IsTerminal() {
				follow[gt.ID].Set(uint(next.Symbol.ID()))
			} else if next.Symbol.Nullable() {
				lookPast.addArrow(gt.ID, next.ID)
			}
		}
	}
	walkGraph(follow, lookPast)
	//
	includes := newDigraph(len(gotos))
	var lookbacks []lookback
	for _, gt := range gotos {
		for _, ptr := range gt.Symbol.Heads() {
			if ptr.Rule().Useless() {
				continue
			}
			path, err := c.path(gt.From, ptr.Rule())
			if err != nil {
				return err
			}
			for i := len(path) - 1; i >= 0; i-- {
				preceding := path[i]
				if preceding.Symbol.IsTerminal() {
					break
				}
				includes.addArrow(preceding.ID, gt.ID)
				if !preceding.Symbol.Nullable() {
					break
				}
			}
			end := gt.From
			if len(path) > 0 {
				end = path[len(path)-1].To
			}
			lookbacks = append(lookbacks, lookback{gt: gt, rule: ptr.Rule(), state: end})
		}
	}
	walkGraph(follow, includes)
	//
	for _, lb := range lookbacks {
		if !lb.state.conflict {
			continue
		}
		item := lb.state.ritem(lb.rule)
		if item == nil {
			return errInternal(lb.state, "no reduce item for rule %v", lb.rule)
		}
		item.Lookahead.InPlaceUnion(follow[lb.gt.ID])
	}
	return nil
}
