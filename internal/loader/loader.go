// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader implements two FASTA ingestion strategies: a
// whole-file memory-map and a bounded-memory line-buffered stream.
// Both produce the same normalized byte buffers and record names.
package loader

import (
	"strconv"

	"github.com/kortschak/g4scan/internal/g4"
)

// normalizer accumulates the normalized bytes of one FASTA record.
// Both loader modes drive the same per-line normalization so that
// mmap and stream inputs produce byte-identical buffers for the same
// file, the precondition mode-parity testing depends on.
type normalizer struct {
	name   string
	data   []byte
	rawLen int
}

func (n *normalizer) addLine(line []byte) {
	n.rawLen += len(line)
	for _, c := range line {
		switch {
		case c >= 'A' && c <= 'Z':
			n.data = append(n.data, c+('a'-'A'))
		case c >= 'a' && c <= 'z':
			n.data = append(n.data, c)
		}
	}
}

// finish returns the Sequence built for record index (1-based) idx,
// applying the "chromosome_<k>" fallback for an empty header name.
func (n *normalizer) finish(idx int) *g4.Sequence {
	name := n.name
	if name == "" {
		name = chromosomeName(idx)
	}
	return g4.NewSequence(name, n.data, idx, n.rawLen)
}

func chromosomeName(idx int) string {
	return "chromosome_" + strconv.Itoa(idx)
}

// headerName extracts the record name from a '>'-prefixed header
// line: the '>' is stripped and the name is the first
// whitespace-delimited token, returned unchanged.
func headerName(line []byte) string {
	line = line[1:] // drop '>'
	i := 0
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	return string(line[:i])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// LoadInline wraps a single raw sequence string (no FASTA header) as
// a one-record result, the shape the CLI's inline-sequence input
// takes.
func LoadInline(seq string) *g4.Sequence {
	n := &normalizer{}
	n.addLine([]byte(seq))
	return n.finish(1)
}
