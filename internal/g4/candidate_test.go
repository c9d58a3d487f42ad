// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqOf(s string) *Sequence {
	return NewSequence("test", []byte(strings.ToLower(s)), 1, len(s))
}

func TestScenarioOneSingleFamily(t *testing.T) {
	s := seqOf("GGGGAGGGGAGGGGAGGGG")
	limits := Limits{MinTetrads: 4, MaxGRun: 4, MaxG4Length: 45, MinScore: 17}
	hits := ScanBuffer(s, limits)
	families, err := Consolidate(hits)
	require.NoError(t, err)
	require.Len(t, families, 1)

	rep := families[0].Representative
	assert.Equal(t, uint64(1), rep.Start)
	assert.Equal(t, uint64(19), rep.End)
	assert.Equal(t, uint64(19), rep.Length)
	assert.Equal(t, uint64(4), rep.Tetrads)
	assert.Equal(t, int32(1), rep.Y1)
	assert.Equal(t, int32(1), rep.Y2)
	assert.Equal(t, int32(1), rep.Y3)
	assert.Equal(t, "GGGGAGGGGAGGGGAGGGG", rep.Sequence)
}

func TestScenarioTwoEmpty(t *testing.T) {
	s := seqOf("ACACAC")
	limits := Limits{MinTetrads: 4, MaxGRun: 4, MaxG4Length: 45, MinScore: 17}
	hits := ScanBuffer(s, limits)
	assert.Empty(t, hits)
}

func TestBoundaryMinTetradsOneMaxGRunOne(t *testing.T) {
	// With one-base tetrads the bonus gmax*(n-2) cancels gmax, so every
	// candidate scores floor(-gavg) <= 0 and none reaches the default
	// min_score of 17.
	s := seqOf("AGAGAGAGAGAGAGAGAGAG")
	limits := Limits{MinTetrads: 1, MaxGRun: 1, MaxG4Length: 45, MinScore: 17}
	hits := ScanBuffer(s, limits)
	assert.Empty(t, hits)
}

func TestBoundaryGRunLongerThanMaxIsDropped(t *testing.T) {
	// All-g input longer than max_g_run drops the entire run: no G-run
	// of length <= max_g_run exists, so there is nothing to seed from.
	long := strings.Repeat("G", 50)
	s := seqOf(long)
	limits := Limits{MinTetrads: 2, MaxGRun: 10, MaxG4Length: 45, MinScore: -1000}
	hits := ScanBuffer(s, limits)
	assert.Empty(t, hits)
}

func TestBoundaryAllGShorterThanMaxYieldsHits(t *testing.T) {
	short := strings.Repeat("G", 20)
	s := seqOf(short)
	limits := Limits{MinTetrads: 2, MaxGRun: 10, MaxG4Length: 45, MinScore: -1000}
	hits := ScanBuffer(s, limits)
	assert.NotEmpty(t, hits)
}

func TestEmptyChromosome(t *testing.T) {
	s := seqOf("")
	limits := DefaultLimits()
	hits := ScanBuffer(s, limits)
	assert.Empty(t, hits)
	families, err := Consolidate(hits)
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestLengthLawAndZeroLoopInvariant(t *testing.T) {
	s := seqOf(strings.Repeat("GGGGTT", 20) + "GGGG")
	limits := Limits{MinTetrads: 2, MaxGRun: 6, MaxG4Length: 45, MinScore: -1000}
	hits := ScanBuffer(s, limits)
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Equal(t, h.Length, 4*h.Tetrads+uint64(h.Y1)+uint64(h.Y2)+uint64(h.Y3))
		assert.Equal(t, h.Length, h.End-h.Start+1)
		assert.LessOrEqual(t, h.zeroLoops(), 1)
		assert.Equal(t, int(h.Length), len(h.Sequence))
		assert.Equal(t, strings.ToUpper(h.Sequence), h.Sequence)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	n, maxLen := 4, 45
	gmax := float64(maxLen - (4*n + 1))
	score := func(y1, y2, y3 int) int {
		gavg := float64(abs(y1-y2)+abs(y2-y3)+abs(y1-y3)) / 3
		bonus := gmax * float64(n-2)
		return int(gmax - gavg + bonus) // truncation equals floor here since both scores tested below are positive
	}
	// Increasing spread between loop lengths should not increase the
	// score for a fixed n and max_len.
	lo := score(1, 1, 1)
	hi := score(1, 1, 10)
	assert.GreaterOrEqual(t, lo, hi)
}
