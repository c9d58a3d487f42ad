// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import "strconv"

// Sanitize maps a FASTA record name to a filesystem-safe stem:
// non-alphanumeric characters other than '-' and '_' become '_', and
// an empty result falls back to "chromosome".
func Sanitize(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "chromosome"
	}
	return string(out)
}

// NameAllocator assigns deterministic, collision-free output stems:
// a repeated sanitized name gets a "_<k>" suffix keyed by a per-name
// counter, never by filesystem enumeration order.
type NameAllocator struct {
	seen map[string]int
}

// NewNameAllocator returns an empty allocator.
func NewNameAllocator() *NameAllocator {
	return &NameAllocator{seen: make(map[string]int)}
}

// Next returns the output stem for a record whose sanitized name is
// base.
func (a *NameAllocator) Next(base string) string {
	n := a.seen[base]
	a.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "_" + strconv.Itoa(n)
}
