package lr

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func bitmaps(n int) []*bitset.BitSet {
	b := make([]*bitset.BitSet, n)
	for i := range b {
		b[i] = bitset.New(uint(n)).Set(uint(i))
	}
	return b
}

func TestWalkGraphChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	g := newDigraph(3)
	g.addArrow(0, 1)
	g.addArrow(1, 2)
	b := bitmaps(3)
	walkGraph(b, g)
	if b[0].Count() != 3 || b[1].Count() != 2 || b[2].Count() != 1 {
		t.Errorf("unexpected bitmaps %v", b)
	}
}

func TestWalkGraphCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	g := newDigraph(5)
	g.addArrow(0, 1)
	g.addArrow(1, 2)
	g.addArrow(2, 1) // component { 1, 2 }
	g.addArrow(2, 2)
	g.addArrow(4, 3)
	b := bitmaps(5)
	walkGraph(b, g)
	if !b[1].Equal(b[2]) || b[1].Count() != 2 {
		t.Errorf("expected component { 1, 2 } to share bitmap, have %v and %v", b[1], b[2])
	}
	if b[0].Count() != 3 {
		t.Errorf("expected node 0 to reach all of { 0, 1, 2 }, has %v", b[0])
	}
	if b[3].Count() != 1 || !b[4].Test(3) || b[4].Test(0) {
		t.Errorf("unexpected bitmaps for nodes 3/4: %v, %v", b[3], b[4])
	}
}

func TestWalkGraphLateCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	g := newDigraph(4)
	g.addArrow(0, 1)
	g.addArrow(1, 2)
	g.addArrow(2, 3)
	g.addArrow(3, 1)
	b := bitmaps(4)
	walkGraph(b, g)
	for i := 1; i < 4; i++ {
		if b[i].Count() != 3 || b[i].Test(0) {
			t.Errorf("expected node %d to have { 1, 2, 3 }, has %v", i, b[i])
		}
	}
	if b[0].Count() != 4 {
		t.Errorf("expected node 0 to have all bits, has %v", b[0])
	}
}
