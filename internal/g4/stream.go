// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Stream is the Stream Scheduler: it holds a FIFO byte buffer bounded
// to chunk+overlap bytes, dispatching a window to a worker as soon as
// the buffer fills and draining chunk bytes from the front. It
// realizes the same ownership rule as the Window Dispatcher without
// ever holding more than one chromosome's worth of in-flight window
// snapshots plus the sliding buffer itself.
type Stream struct {
	limits         Limits
	chunk, overlap int

	buf    []byte
	offset int // absolute position of buf[0] in the chromosome.

	g       *errgroup.Group
	mu      sync.Mutex
	results [][]Hit
}

// NewStream starts a Stream Scheduler for one chromosome under the
// given limits.
func NewStream(limits Limits) *Stream {
	chunk, overlap := geometry(limits)
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	return &Stream{limits: limits, chunk: chunk, overlap: overlap, g: g}
}

// Write appends normalized bytes to the sliding buffer, dispatching
// windows to workers as soon as enough bytes have accumulated. It
// never blocks on worker completion; it only blocks if the bounded
// errgroup pool is saturated, the same backpressure a work-stealing
// pool gives a producer that outruns its consumers.
func (s *Stream) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	for len(s.buf) >= s.chunk+s.overlap {
		s.dispatch(s.buf[:s.chunk+s.overlap], false)
		s.offset += s.chunk
		s.buf = append(s.buf[:0:0], s.buf[s.chunk:]...)
	}
	return len(p), nil
}

// Finish dispatches the final, possibly undersized, window holding
// whatever bytes remain, waits for every in-flight worker to
// complete, and returns the aggregated raw hits for the chromosome.
// Workers may complete out of order; order does not matter here
// because the Consolidator's canonical sort restores it.
func (s *Stream) Finish() ([]Hit, error) {
	if len(s.buf) > 0 {
		s.dispatch(s.buf, true)
	}
	if err := s.g.Wait(); err != nil {
		return nil, err
	}
	var all []Hit
	for _, r := range s.results {
		all = append(all, r...)
	}
	return all, nil
}

// dispatch takes ownership of a snapshot copy of data (the caller's
// buffer is mutated immediately after dispatch returns, so the worker
// must not alias it) and schedules a worker to scan it.
func (s *Stream) dispatch(data []byte, isLast bool) {
	snapshot := make([]byte, len(data))
	copy(snapshot, data)
	base := s.offset
	chunk := s.chunk
	s.mu.Lock()
	idx := len(s.results)
	s.results = append(s.results, nil)
	s.mu.Unlock()

	s.g.Go(func() error {
		hits := scan(snapshot, base, s.limits)
		if !isLast {
			owned := hits[:0]
			primaryEnd := base + chunk
			for _, h := range hits {
				if int(h.Start)-1 < primaryEnd {
					owned = append(owned, h)
				}
			}
			hits = owned
		}
		s.mu.Lock()
		s.results[idx] = hits
		s.mu.Unlock()
		return nil
	})
}
