// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import "github.com/biogo/store/interval"

// hitInterval adapts a Hit to interval.IntInterface so that an
// interval.IntTree can answer overlap queries over a bag of hits. It
// exists only to give the sorted-sweep families in Consolidate an
// independent check: the production algorithm in Consolidate never
// builds a tree.
type hitInterval struct {
	uid uintptr
	Hit
}

// Overlap tests the closed interval [Start, Start+Length] against b,
// matching the relation Consolidate's sorted sweep uses (a hit joins
// a family iff h.Start <= cur.End()): two closed intervals overlap
// iff each one's start falls at or before the other's end.
func (h hitInterval) Overlap(b interval.IntRange) bool {
	end := int(h.Start) + int(h.Length)
	return b.Start <= end && int(h.Start) <= b.End
}

func (h hitInterval) ID() uintptr { return h.uid }

func (h hitInterval) Range() interval.IntRange {
	end := int(h.Start) + int(h.Length)
	return interval.IntRange{Start: int(h.Start), End: end}
}

// groupsByIntervalTree computes overlap groups of hits using an
// interval.IntTree. It is used by tests to check that the sorted-sweep
// grouping in Consolidate agrees with a tree-based answer to the same
// question.
func groupsByIntervalTree(hits []Hit) [][]Hit {
	var tree interval.IntTree
	for i, h := range hits {
		if err := tree.Insert(hitInterval{uid: uintptr(i), Hit: h}, true); err != nil {
			panic(err)
		}
	}
	tree.AdjustRanges()

	parent := make([]int, len(hits))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for i, h := range hits {
		for _, o := range tree.Get(hitInterval{Hit: h}) {
			j := int(o.(hitInterval).uid)
			if j != i {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]Hit)
	for i, h := range hits {
		r := find(i)
		groups[r] = append(groups[r], h)
	}
	out := make([][]Hit, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}
