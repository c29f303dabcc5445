package table

import (
	"bytes"
	"sort"

	"github.com/cznic/mathutil"
)

// entry is a sparse vector to be placed in a packed table.
type entry struct {
	vec   []int // from first to last populated cell
	owner int   // check value
	min   int   // index of the first populated cell in the original vector
	ptr   int   // index into the pointer vector
}

// newEntry trims the holes at both ends of vector. It returns nil if vector
// has no populated cell.
func newEntry(vector []int, owner, ptr int) *entry {
	lo, hi := -1, -1
	for i, v := range vector {
		if v != Nil {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	if lo < 0 {
		return nil
	}
	return &entry{vec: vector[lo : hi+1], owner: owner, min: lo, ptr: ptr}
}

// firstRun returns the length of the leading run of populated cells.
func (e *entry) firstRun() int {
	n := 0
	for n < len(e.vec) && e.vec[n] != Nil {
		n++
	}
	return n
}

const (
	free = '-'
	used = 'o'
)

// pack overlays the entries into a single table, longest vector first.
// Each vector is placed at the lowest offset where all of its populated cells
// meet free cells. ptr receives (offset - min) for every entry.
func pack(entries []*entry, ptr []int) (tbl []int, chk []int) {
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].vec) > len(entries[j].vec)
	})
	cells := bytes.Repeat([]byte{free}, 1024)
	upper := 0 // every cell at or behind upper is free
	for _, e := range entries {
		if upper+len(e.vec) > len(cells) {
			cells = append(cells, bytes.Repeat([]byte{free}, len(e.vec)+1024)...)
		}
		idx := findSlot(cells, e)
		for i, v := range e.vec {
			if v == Nil {
				continue
			}
			at := idx + i
			for len(tbl) <= at {
				tbl = append(tbl, Nil)
				chk = append(chk, -1)
			}
			tbl[at] = v
			chk[at] = e.owner
			cells[at] = used
		}
		ptr[e.ptr] = idx - e.min
		upper = mathutil.Max(upper, idx+len(e.vec))
		tracer().Debugf("packed vector of %d cells for %d at offset %d", len(e.vec), e.owner, idx)
	}
	return tbl, chk
}

// findSlot searches the lowest offset in cells where e fits. The leading run
// of populated cells is located by substring search, the rest is verified.
func findSlot(cells []byte, e *entry) int {
	needle := bytes.Repeat([]byte{free}, e.firstRun())
	from := 0
	for {
		j := bytes.Index(cells[from:], needle)
		if j < 0 { // cannot happen, cells behind upper are free
			panic("no free slot in packed table")
		}
		idx := from + j
		if fits(cells, e, idx) {
			return idx
		}
		from = idx + 1
	}
}

func fits(cells []byte, e *entry, idx int) bool {
	for i, v := range e.vec {
		if v != Nil && (idx+i >= len(cells) || cells[idx+i] != free) {
			return false
		}
	}
	return true
}
