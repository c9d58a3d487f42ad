// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

// ScanBuffer runs the Candidate Engine over the whole of seq in a
// single pass, with no chunking. It is the reference used by the
// chunk-parity and stream-parity property tests.
func ScanBuffer(seq *Sequence, limits Limits) []Hit {
	return scan(seq.Data, 0, limits)
}
