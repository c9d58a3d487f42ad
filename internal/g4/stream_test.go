// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestModeParity checks that feeding a buffer through the Stream
// Scheduler in arbitrarily sized writes produces the same bag of hits
// as scanning the whole buffer at once, regardless of where the write
// boundaries fall.
func TestModeParity(t *testing.T) {
	limits := Limits{MinTetrads: 2, MaxGRun: 6, MaxG4Length: 45, MinScore: 10}
	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		n := 50 + r.Intn(400)
		raw := randomSequence(r, n)
		seq := seqOf(raw)
		want := signatures(ScanBuffer(seq, limits))

		st := NewStream(limits)
		pos := 0
		for pos < len(seq.Data) {
			step := 1 + r.Intn(7)
			end := pos + step
			if end > len(seq.Data) {
				end = len(seq.Data)
			}
			_, err := st.Write(seq.Data[pos:end])
			assert.NoError(t, err)
			pos = end
		}
		got, err := st.Finish()
		assert.NoError(t, err)
		assert.Equal(t, want, signatures(got), "trial %d seq=%s", trial, raw)
	}
}

func TestStreamEmptyInput(t *testing.T) {
	st := NewStream(DefaultLimits())
	hits, err := st.Finish()
	assert.NoError(t, err)
	assert.Empty(t, hits)
}
