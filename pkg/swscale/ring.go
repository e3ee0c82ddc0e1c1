package swscale

import "fmt"

// lineRing keeps the most recent horizontally scaled rows of one plane
// group (luma+alpha or U+V). Row k lives in slot k % capacity, so a row is
// resident while it is among the last capacity rows produced and not older
// than the last skip.
type lineRing struct {
	slots [][][]int32 // slot -> channel -> row
	last  int         // last row produced, -1 when empty
	first int         // oldest row that was ever produced since the last skip
	write int         // slot the next row lands in
}

func newLineRing(capacity, channels, width int) *lineRing {
	r := &lineRing{slots: make([][][]int32, capacity)}
	for i := range r.slots {
		r.slots[i] = make([][]int32, channels)
		for ch := range r.slots[i] {
			r.slots[i][ch] = make([]int32, width)
		}
	}
	r.reset()
	return r
}

func (r *lineRing) capacity() int { return len(r.slots) }

func (r *lineRing) reset() {
	r.last = -1
	r.first = 0
	r.write = 0
}

// next claims the slot for row last+1
func (r *lineRing) next() [][]int32 {
	r.last++
	s := r.slots[r.write]
	r.write++
	if r.write == len(r.slots) {
		r.write = 0
	}
	return s
}

// skipTo marks the rows before row as never produced. Only moves forward.
func (r *lineRing) skipTo(row int) {
	if row <= r.last+1 {
		return
	}
	r.last = row - 1
	r.first = row
	r.write = row % len(r.slots)
}

func (r *lineRing) resident(row int) bool {
	return row <= r.last && row >= r.first && row > r.last-len(r.slots)
}

// span collects channel ch of rows [first, first+n) into out, which is
// reused when large enough.
func (r *lineRing) span(first, n, ch int, out [][]int32) ([][]int32, error) {
	if !r.resident(first) || !r.resident(first+n-1) {
		return nil, fmt.Errorf("swscale: rows %d..%d with %d..%d buffered: %w",
			first, first+n-1, max(r.first, r.last-len(r.slots)+1), r.last, ErrRingUnderrun)
	}
	out = out[:0]
	for k := first; k < first+n; k++ {
		out = append(out, r.slots[k%len(r.slots)][ch])
	}
	return out, nil
}
