// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// window is one unit of parallel work over a Sequence: primaryStart
// and primaryEnd bound the half-open range of positions this window
// owns for emission, while extendedEnd extends primaryEnd by the
// configured overlap to give the Candidate Engine right-side scanning
// context. The extended suffix never contributes an emission of its
// own; see DispatchWindows.
type window struct {
	primaryStart, primaryEnd int
	extendedEnd              int
}

// geometry returns the chunk and overlap sizes for a scan bounded by
// limits.
func geometry(limits Limits) (chunk, overlap int) {
	chunk = clamp(limits.MaxG4Length+27, 32, 64)
	overlap = max(limits.MaxG4Length, 1)
	return chunk, overlap
}

// windowsFor tiles a buffer of length l into windows of the given
// chunk and overlap geometry.
func windowsFor(l, chunk, overlap int) []window {
	if l == 0 {
		return nil
	}
	var ws []window
	for start := 0; start < l; start += chunk {
		primaryEnd := min(start+chunk, l)
		extendedEnd := min(primaryEnd+overlap, l)
		ws = append(ws, window{primaryStart: start, primaryEnd: primaryEnd, extendedEnd: extendedEnd})
	}
	return ws
}

// DispatchWindows partitions seq into overlapping windows per the
// configured geometry, runs the Candidate Engine on each window's
// extended range concurrently across a work-stealing pool sized to
// the CPU count, and returns the concatenation of raw hits. The
// ownership rule (a window emits a hit iff the hit's Start falls in
// that window's primary range) guarantees every raw hit is produced
// by exactly one window, so the result is exactly the multiset
// ScanBuffer would produce on the whole Sequence.
func DispatchWindows(seq *Sequence, limits Limits) ([]Hit, error) {
	chunk, overlap := geometry(limits)
	ws := windowsFor(seq.Len(), chunk, overlap)
	if len(ws) == 0 {
		return nil, nil
	}

	results := make([][]Hit, len(ws))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, w := range ws {
		i, w := i, w
		g.Go(func() error {
			slice := seq.Data[w.primaryStart:w.extendedEnd]
			hits := scan(slice, w.primaryStart, limits)
			owned := hits[:0]
			for _, h := range hits {
				if int(h.Start)-1 < w.primaryEnd {
					owned = append(owned, h)
				}
			}
			results[i] = owned
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Hit
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}
