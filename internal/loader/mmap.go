// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/kortschak/g4scan/internal/g4"
)

// LoadMmap memory-maps path read-only and walks it linearly,
// identifying headers at line starts. The mapped region is
// released once parsing completes; every returned Sequence owns an
// independent normalized buffer, so none of them alias the mapping.
func LoadMmap(path string) ([]*g4.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "g4scan/loader: open for mmap")
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(err, "g4scan/loader: mmap")
	}
	defer m.Unmap()

	adviseSequential(m)

	data := []byte(m)
	var (
		seqs []*g4.Sequence
		cur  *normalizer
		idx  int
	)
	flush := func() {
		if cur != nil {
			seqs = append(seqs, cur.finish(idx))
		}
	}

	pos := 0
	for pos < len(data) {
		nl := bytes.IndexByte(data[pos:], '\n')
		var line []byte
		if nl < 0 {
			line = data[pos:]
			pos = len(data)
		} else {
			line = data[pos : pos+nl]
			pos += nl + 1
		}
		line = trimEOL(line)
		if len(line) > 0 && line[0] == '>' {
			flush()
			idx++
			cur = &normalizer{name: headerName(line)}
		} else if cur != nil {
			cur.addLine(line)
		}
	}
	flush()
	if len(data) == 0 {
		return nil, nil
	}
	return seqs, nil
}
