// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// candidate is a partial G4 under breadth-first expansion. Once yi is
// set to a non-negative value, later expansion steps only read it;
// cursor marks the buffer position immediately after the last decided
// tetrad, the point from which the next loop is measured.
type candidate struct {
	n              int
	start          int // 0-based, local to the slice passed to scan.
	y1, y2, y3     int
	cursor         int
	maxLen         int
}

// scan runs the Candidate Engine over d, returning the bag of viable
// raw hits with coordinates offset by base (so callers scanning a
// window of a larger buffer can report absolute positions). Results
// are sorted ascending by (Start, End), which the Consolidator depends
// on for stable tie-breaks.
func scan(d []byte, base int, limits Limits) []Hit {
	n := min(limits.MaxGRun, limits.MaxG4Length/4)
	if n < limits.MinTetrads {
		return nil
	}

	var queue []candidate
	eachGRun(d, limits.MinTetrads, limits.MaxGRun, func(r, length int) bool {
		upper := min(length, n)
		for tet := limits.MinTetrads; tet <= upper; tet++ {
			maxLen := maxLenFor(tet, limits.MaxG4Length)
			for offset := 0; offset <= length-tet; offset++ {
				start := r + offset
				queue = append(queue, candidate{
					n:      tet,
					start:  start,
					y1:     -1,
					y2:     -1,
					y3:     -1,
					cursor: start + tet,
					maxLen: maxLen,
				})
			}
		}
		return true
	})

	var hits []Hit
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		minAccept := 0
		if c.y1 == 0 || c.y2 == 0 {
			minAccept = 1
		}

		limit := c.start + c.maxLen + 1 - c.n
		for p := c.cursor; p < limit; p++ {
			if p+c.n > len(d) {
				break
			}
			if (p-c.start)+c.n-1 >= c.maxLen {
				break
			}
			if !allG(d[p : p+c.n]) {
				continue
			}
			y := p - c.cursor
			if y < minAccept {
				continue
			}

			next := c
			switch {
			case c.y1 < 0:
				next.y1 = y
			case c.y2 < 0:
				next.y2 = y
			default:
				next.y3 = y
			}
			next.cursor = p + c.n

			if next.y3 >= 0 {
				if h, ok := finalize(next, d, base, limits); ok {
					hits = append(hits, h)
				}
			} else {
				queue = append(queue, next)
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		return hits[i].End < hits[j].End
	})
	return hits
}

func allG(b []byte) bool {
	for _, c := range b {
		if c != 'g' {
			return false
		}
	}
	return true
}

// finalize scores and validates a complete candidate, returning the
// emitted Hit and whether it is viable.
func finalize(c candidate, d []byte, base int, limits Limits) (Hit, bool) {
	length := 4*c.n + c.y1 + c.y2 + c.y3
	if length > c.maxLen {
		return Hit{}, false
	}

	pairDiffs := []float64{
		float64(abs(c.y1 - c.y2)),
		float64(abs(c.y2 - c.y3)),
		float64(abs(c.y1 - c.y3)),
	}
	gavg := floats.Sum(pairDiffs) / float64(len(pairDiffs))
	gmax := float64(c.maxLen - (4*c.n + 1))
	bonus := gmax * float64(c.n-2)
	gscore := int(math.Floor(gmax - gavg + bonus))
	if gscore < limits.MinScore {
		return Hit{}, false
	}

	startAbs := base + c.start
	start1 := uint64(startAbs + 1)
	end1 := uint64(startAbs + length)

	t1 := start1
	t2 := uint64(startAbs+c.n+c.y1) + 1
	t3 := t2 + uint64(c.n+c.y2)
	t4 := t3 + uint64(c.n+c.y3)

	seq := make([]byte, length)
	copy(seq, d[c.start:c.start+length])
	upper(seq)

	h := Hit{
		Start:    start1,
		End:      end1,
		T1:       t1,
		T2:       t2,
		T3:       t3,
		T4:       t4,
		Y1:       int32(c.y1),
		Y2:       int32(c.y2),
		Y3:       int32(c.y3),
		Tetrads:  uint64(c.n),
		Length:   uint64(length),
		GScore:   int32(gscore),
		Sequence: string(seq),
	}
	if h.zeroLoops() > 1 {
		return Hit{}, false
	}
	return h, true
}

func upper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}
