// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package g4 implements the G-quadruplex (G4/QGRS) detection pipeline:
// G-run scanning, candidate enumeration, chunked parallel dispatch over
// whole-buffer and streaming inputs, and family consolidation.
package g4

import "github.com/pkg/errors"

// Limits bounds a scan over a Sequence. MinTetrads and MaxGRun bound the
// tetrad length considered when seeding a candidate; MaxG4Length bounds
// the total length of a complete G4; MinScore is the minimum heuristic
// score a candidate must reach to be reported.
type Limits struct {
	MinTetrads  int
	MaxGRun     int
	MaxG4Length int
	MinScore    int
}

// DefaultLimits returns the limits used by the command line tool when
// no overriding flags are given.
func DefaultLimits() Limits {
	return Limits{
		MinTetrads:  2,
		MaxGRun:     10,
		MaxG4Length: 45,
		MinScore:    17,
	}
}

// Validate checks that l is internally consistent, returning a
// descriptive error naming the offending field otherwise.
func (l Limits) Validate() error {
	if l.MinTetrads < 1 {
		return errors.Errorf("g4: min_tetrads must be >= 1, got %d", l.MinTetrads)
	}
	if l.MaxGRun < l.MinTetrads {
		return errors.Errorf("g4: max_g_run must be >= min_tetrads (%d), got %d", l.MinTetrads, l.MaxGRun)
	}
	if l.MaxG4Length < 4*l.MinTetrads {
		return errors.Errorf("g4: max_g4_length must be >= 4*min_tetrads (%d), got %d", 4*l.MinTetrads, l.MaxG4Length)
	}
	return nil
}

// maxLenFor returns the per-candidate length ceiling for a tetrad count
// of n under the configured max_g4_length. The 45/30 split favours
// longer tetrads, per the source heuristic; max_g4_length always caps
// the result, applied after the 45/30 split.
func maxLenFor(n, maxG4Length int) int {
	base := 30
	if n >= 3 {
		base = 45
	}
	if maxG4Length < base {
		return maxG4Length
	}
	return base
}

// clamp restricts v to the inclusive range [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
