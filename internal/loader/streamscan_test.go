// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/g4scan/internal/g4"
)

func TestScanStreamMatchesMmapDispatch(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "g4scan-*.fasta")
	require.NoError(t, err)
	_, err = f.WriteString(twoRecordFasta)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	limits := g4.Limits{MinTetrads: 2, MaxGRun: 6, MaxG4Length: 45, MinScore: -1000}

	mm, err := LoadMmap(f.Name())
	require.NoError(t, err)
	want := make(map[string][]g4.Hit)
	for _, s := range mm {
		hits, err := g4.DispatchWindows(s, limits)
		require.NoError(t, err)
		want[s.Name] = hits
	}

	sf, err := os.Open(f.Name())
	require.NoError(t, err)
	defer sf.Close()

	got := make(map[string][]g4.Hit)
	err = ScanStream(sf, limits, func(name string, hits []g4.Hit) error {
		got[name] = hits
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, len(want), len(got))
	for name, whits := range want {
		ghits, ok := got[name]
		require.True(t, ok, "missing record %s", name)
		assert.ElementsMatch(t, whits, ghits)
	}
}

func TestScanStreamStopsOnCallbackError(t *testing.T) {
	const fasta = ">a\nGGGG\n>b\nGGGG\n>c\nGGGG\n"
	limits := g4.DefaultLimits()
	var seen []string
	boom := assertErr("stop")
	err := ScanStream(strings.NewReader(fasta), limits, func(name string, hits []g4.Hit) error {
		seen = append(seen, name)
		if name == "b" {
			return boom
		}
		return nil
	})
	require.Equal(t, boom, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
