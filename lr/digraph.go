package lr

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// digraph is a directed graph over goto-nodes, given as adjacency lists.
type digraph struct {
	arrows [][]int
}

func newDigraph(size int) *digraph {
	return &digraph{arrows: make([][]int, size)}
}

func (d *digraph) addArrow(from, to int) {
	d.arrows[from] = append(d.arrows[from], to)
}

func (d *digraph) size() int {
	return len(d.arrows)
}

// frame is an activation record of the traversal.
type frame struct {
	node  int
	depth int
	arrow int // next arrow to follow
}

// walkGraph unions into every node's bitmap the bitmaps of all nodes
// reachable from it. Nodes of a strongly connected component end up with
// identical bitmaps. This is the digraph algorithm of DeRemer/Pennello,
// with an explicit stack instead of recursion.
func walkGraph(bitmap []*bitset.BitSet, graph *digraph) {
	index := make([]int, graph.size()) // 0 = not yet traversed
	done := graph.size() + 2
	stack := arraystack.New()  // nodes of components under construction
	frames := arraystack.New() // traversal frames
	enter := func(node int) {
		stack.Push(node)
		index[node] = stack.Size()
		frames.Push(&frame{node: node, depth: stack.Size()})
	}
	for start := 0; start < graph.size(); start++ {
		if index[start] != 0 {
			continue
		}
		enter(start)
		for !frames.Empty() {
			top, _ := frames.Peek()
			f := top.(*frame)
			if f.arrow < len(graph.arrows[f.node]) {
				next := graph.arrows[f.node][f.arrow]
				if index[next] == 0 {
					enter(next) // f.arrow is re-visited after next is done
					continue
				}
				if index[f.node] > index[next] { // cycle
					index[f.node] = index[next]
				}
				bitmap[f.node].InPlaceUnion(bitmap[next])
				f.arrow++
				continue
			}
			if index[f.node] == f.depth { // f.node is root of a component
				for {
					x, _ := stack.Pop()
					n := x.(int)
					index[n] = done
					if n == f.node {
						break
					}
					bitmap[n].InPlaceUnion(bitmap[f.node])
				}
			}
			frames.Pop()
		}
	}
}
