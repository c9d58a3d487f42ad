// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHits() []Hit {
	return []Hit{
		{Start: 1, End: 19, Length: 19, GScore: 84, Sequence: "GGGGAGGGGAGGGGAGGGG"},
		{Start: 1, End: 19, Length: 19, GScore: 50, Sequence: "GGGGAGGGGAGGGGAGGGG"}, // exact dup, lower score
		{Start: 10, End: 25, Length: 16, GScore: 60, Sequence: "AAAAAAAAAAAAAAAA"},   // overlaps family 1
		{Start: 100, End: 120, Length: 21, GScore: 30, Sequence: "CCCCCCCCCCCCCCCCCCCCC"},
	}
}

func TestConsolidateDedupAndFamilies(t *testing.T) {
	families, err := Consolidate(sampleHits())
	require.NoError(t, err)
	require.Len(t, families, 2)

	f1 := families[0]
	assert.Equal(t, uint64(84), uint64(f1.Representative.GScore))
	assert.Len(t, f1.Members, 2) // the deduped 19bp hit plus the overlapping 10-25 hit

	f2 := families[1]
	assert.Equal(t, uint64(100), f2.Representative.Start)
}

// TestConsolidationDeterminism checks that Consolidate's output does
// not depend on the order hits are supplied in.
func TestConsolidationDeterminism(t *testing.T) {
	base := sampleHits()
	want, err := Consolidate(base)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]Hit, len(base))
		copy(shuffled, base)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := Consolidate(shuffled)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Representative, got[i].Representative)
			assert.ElementsMatch(t, want[i].Members, got[i].Members)
		}
	}
}

func TestConsolidateEmpty(t *testing.T) {
	families, err := Consolidate(nil)
	require.NoError(t, err)
	assert.Empty(t, families)
}

// TestFamilyGroupingAgreesWithIntervalTree cross-checks the
// sorted-sweep family grouping against an independent interval-tree
// computation of the same connected components over the deduplicated
// hits that the families partition.
func TestFamilyGroupingAgreesWithIntervalTree(t *testing.T) {
	limits := Limits{MinTetrads: 2, MaxGRun: 6, MaxG4Length: 45, MinScore: -1000}
	seq := seqOf("gggttagggttagggttagggttagggacacacaccacacaccagggttagggttaggg")
	hits := ScanBuffer(seq, limits)
	require.NotEmpty(t, hits)

	families, err := Consolidate(hits)
	require.NoError(t, err)

	var survivors []Hit
	for _, f := range families {
		survivors = append(survivors, f.Members...)
	}
	treeGroups := groupsByIntervalTree(survivors)
	assert.Equal(t, len(treeGroups), len(families), "family count must agree with interval-tree connected components")

	for _, g := range treeGroups {
		start := g[0].Start
		var want *Family
		for i := range families {
			for _, m := range families[i].Members {
				if m.Start == start {
					want = &families[i]
				}
			}
		}
		require.NotNil(t, want, "no family found starting at %d", start)
		assert.Len(t, want.Members, len(g))
	}
}
