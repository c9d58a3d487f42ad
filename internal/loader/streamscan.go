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

// ScanStream drives the Stream Scheduler directly off a line-buffered
// FASTA reader: normalized bytes are pushed into a per-record
// *g4.Stream as they arrive, so a chromosome is never held whole:
// besides the current line, which is read and normalized in full, the
// sliding buffer keeps fewer than chunk+overlap bytes between lines.
// onRecord is called once per
// FASTA record, in file order, with that record's consolidation-ready
// raw hits; a non-nil return from onRecord stops processing of any
// further records.
func ScanStream(r io.Reader, limits g4.Limits, onRecord func(name string, hits []g4.Hit) error) error {
	br := bufio.NewReaderSize(r, streamBufferSize)

	var (
		name    string
		idx     int
		st      *g4.Stream
		sawLine bool
		normBuf []byte
	)

	flush := func() error {
		if st == nil {
			return nil
		}
		hits, err := st.Finish()
		if err != nil {
			return errors.Wrap(err, "g4scan/loader: finish stream window")
		}
		return onRecord(recordNameOrFallback(name, idx), hits)
	}

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			sawLine = true
			trimmed := trimEOL(line)
			if len(trimmed) > 0 && trimmed[0] == '>' {
				if ferr := flush(); ferr != nil {
					return ferr
				}
				idx++
				name = headerName(trimmed)
				st = g4.NewStream(limits)
			} else if st != nil {
				normBuf = normalizeInto(normBuf[:0], trimmed)
				if _, werr := st.Write(normBuf); werr != nil {
					return errors.Wrap(werr, "g4scan/loader: write stream window")
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "g4scan/loader: reading FASTA stream")
		}
	}
	if ferr := flush(); ferr != nil {
		return ferr
	}
	if !sawLine {
		return nil
	}
	return nil
}

func normalizeInto(dst, line []byte) []byte {
	for _, c := range line {
		switch {
		case c >= 'A' && c <= 'Z':
			dst = append(dst, c+('a'-'A'))
		case c >= 'a' && c <= 'z':
			dst = append(dst, c)
		}
	}
	return dst
}

func recordNameOrFallback(name string, idx int) string {
	if name == "" {
		return chromosomeName(idx)
	}
	return name
}
