// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/kortschak/g4scan/internal/g4"
)

// WriteBedGraph writes the family density sidecar: one line per
// family, ordered by ascending Start, giving the family's 0-based
// half-open interval and a density score for the family's
// representative hit over the family's span. label, if non-empty, is
// emitted as a leading bedGraph track header line.
func WriteBedGraph(w io.Writer, recordName string, families []g4.Family, label string) error {
	if label != "" {
		if _, err := fmt.Fprintf(w, "track name=%q type=bedGraph\n", label); err != nil {
			return err
		}
	}

	ordered := make([]g4.Family, len(families))
	copy(ordered, families)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Representative.Start < ordered[j].Representative.Start
	})

	for _, f := range ordered {
		familyStart := f.Members[0].Start
		familyEnd := f.End()
		start0 := familyStart - 1
		end0 := familyEnd - 1
		length := familyEnd - familyStart
		density := float64(f.Representative.GScore) / float64(length)
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\n", recordName, start0, end0, density); err != nil {
			return err
		}
	}
	return nil
}
