// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import "bytes"

// eachGRun calls yield for every maximal run of 'g' bytes in d whose
// length falls in [minTetrads, maxGRun], in ascending start order.
// Runs outside that bound are dropped, not truncated. yield may
// return false to stop the scan early.
//
// The scan is a linear walk driven by bytes.IndexByte: each call seeks
// the next 'g', then walks forward to find the end of that run before
// resuming the search past it.
func eachGRun(d []byte, minTetrads, maxGRun int, yield func(start, length int) bool) {
	pos := 0
	for pos < len(d) {
		i := bytes.IndexByte(d[pos:], 'g')
		if i < 0 {
			return
		}
		start := pos + i
		end := start + 1
		for end < len(d) && d[end] == 'g' {
			end++
		}
		length := end - start
		if length >= minTetrads && length <= maxGRun {
			if !yield(start, length) {
				return
			}
		}
		pos = end
	}
}
