// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

// Sequence is the normalized (lowercased, whitespace- and non-letter-
// stripped) byte buffer for one FASTA record. A Sequence is immutable
// once constructed and is shared by value-semantic clones of its
// pointer among window and stream workers; nothing mutates Data after
// NewSequence returns, so sharing a *Sequence across goroutines needs
// no further synchronization.
type Sequence struct {
	// Name is the record's FASTA header token, or the
	// "chromosome_<k>" fallback when the header carried no name.
	Name string

	// Data is the normalized byte buffer: lowercase ASCII letters
	// only, in 0-based coordinates.
	Data []byte

	// Index is the 1-based position of this record within its
	// source file.
	Index int

	// RawLen is the number of bytes seen on sequence lines before
	// normalization, kept only for diagnostics.
	RawLen int
}

// NewSequence constructs a Sequence from an already-normalized buffer.
// Callers that build buffer up incrementally should pass a buffer
// they no longer intend to mutate; Clone and the scan entry points
// never modify Data.
func NewSequence(name string, data []byte, index, rawLen int) *Sequence {
	return &Sequence{Name: name, Data: data, Index: index, RawLen: rawLen}
}

// Clone returns a value-semantic handle to the same underlying buffer.
// Since Data is never mutated after construction, Clone need not copy
// it: sharing a buffer across tasks by cloning a handle, rather than by
// manual reference counting, is safe because the garbage collector
// keeps the buffer alive for as long as any handle references it.
func (s *Sequence) Clone() *Sequence {
	return s
}

// Len returns the length of the normalized buffer.
func (s *Sequence) Len() int {
	return len(s.Data)
}
