// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/kortschak/g4scan/internal/g4"
)

// streamBufferSize is the minimum line-buffered reader size for
// stream mode.
const streamBufferSize = 1 << 20 // 1 MiB

// LoadStream parses FASTA records from r using a line-buffered reader
// (bufio.Reader plus ReadBytes('\n')) rather than bufio.Scanner, so
// arbitrarily long sequence lines never hit a token size limit.
func LoadStream(r io.Reader) ([]*g4.Sequence, error) {
	br := bufio.NewReaderSize(r, streamBufferSize)

	var (
		seqs    []*g4.Sequence
		cur     *normalizer
		idx     int
		sawLine bool
	)
	flush := func() {
		if cur != nil {
			seqs = append(seqs, cur.finish(idx))
		}
	}

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			sawLine = true
			trimmed := trimEOL(line)
			if len(trimmed) > 0 && trimmed[0] == '>' {
				flush()
				idx++
				cur = &normalizer{name: headerName(trimmed)}
			} else if cur != nil {
				cur.addLine(trimmed)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "g4scan/loader: reading FASTA stream")
		}
	}
	flush()
	if !sawLine {
		return nil, nil
	}
	return seqs, nil
}

func trimEOL(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
