// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

// Hit is a putative G-quadruplex, either as produced directly by the
// Candidate Engine (a raw hit) or as selected by the Consolidator to
// represent a Family (a consolidated hit); the shape is the same in
// both cases.
//
// Coordinates are 1-based; Start is the position of the first tetrad's
// first base and End is the position of the last base of the fourth
// loop-closing tetrad, so End-Start+1 equals Length.
type Hit struct {
	Start uint64
	End   uint64

	// T1..T4 are the 1-based start positions of the four tetrads.
	T1, T2, T3, T4 uint64

	Y1, Y2, Y3 int32

	Tetrads uint64
	Length  uint64
	GScore  int32

	// Sequence is the uppercased slice of the normalized buffer
	// spanning [Start, End].
	Sequence string
}

// zeroLoops reports how many of the three loop lengths are exactly 0.
func (h Hit) zeroLoops() int {
	n := 0
	if h.Y1 == 0 {
		n++
	}
	if h.Y2 == 0 {
		n++
	}
	if h.Y3 == 0 {
		n++
	}
	return n
}

// Family is a maximal set of hits pairwise connected by positional
// overlap of their closed intervals [Start, Start+Length]. Members are
// kept in ascending (Start, End) order, the canonical order the
// Consolidator sorts survivors into before sweeping them into
// families.
type Family struct {
	Members []Hit

	// Representative is the member chosen to stand for the family:
	// maximum GScore, ties broken by lowest Start, then lowest End,
	// then lexicographically smallest Sequence.
	Representative Hit
}

// End returns the exclusive right edge of the family's interval in
// the same units the sweep in the Consolidator uses: max over members
// of Start+Length.
func (f Family) End() uint64 {
	var e uint64
	for _, m := range f.Members {
		if v := m.Start + m.Length; v > e {
			e = v
		}
	}
	return e
}
