// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/kortschak/g4scan/internal/g4"
)

var columnarOrder = binary.BigEndian

// WriteColumnar writes hits in the columnar binary format: the same
// column order as the text format, unsigned 64-bit integers for
// start/end/length/tetrads, signed 32-bit integers for
// y1/y2/y3/gscore, and a length-prefixed sequence. If name ends in
// ".zst" the stream is wrapped in a zstd encoder.
func WriteColumnar(w io.Writer, name string, hits []g4.Hit) error {
	out := w
	if strings.HasSuffix(name, ".zst") {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return errors.Wrap(err, "g4scan/export: create zstd encoder")
		}
		defer enc.Close()
		out = enc
	}

	var hdr [8]byte
	columnarOrder.PutUint64(hdr[:], uint64(len(hits)))
	if _, err := out.Write(hdr[:]); err != nil {
		return err
	}

	var b [8]byte
	for _, h := range hits {
		columnarOrder.PutUint64(b[:], h.Start)
		if _, err := out.Write(b[:]); err != nil {
			return err
		}
		columnarOrder.PutUint64(b[:], h.End)
		if _, err := out.Write(b[:]); err != nil {
			return err
		}
		columnarOrder.PutUint64(b[:], h.Length)
		if _, err := out.Write(b[:]); err != nil {
			return err
		}
		columnarOrder.PutUint64(b[:], h.Tetrads)
		if _, err := out.Write(b[:]); err != nil {
			return err
		}
		for _, v := range [4]int32{h.Y1, h.Y2, h.Y3, h.GScore} {
			columnarOrder.PutUint32(b[:4], uint32(v))
			if _, err := out.Write(b[:4]); err != nil {
				return err
			}
		}
		seq := []byte(h.Sequence)
		columnarOrder.PutUint32(b[:4], uint32(len(seq)))
		if _, err := out.Write(b[:4]); err != nil {
			return err
		}
		if _, err := out.Write(seq); err != nil {
			return err
		}
	}
	return nil
}

// ReadColumnar parses a stream written by WriteColumnar. name is used
// only to decide whether the stream is zstd-wrapped.
func ReadColumnar(r io.Reader, name string) ([]g4.Hit, error) {
	in := r
	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "g4scan/export: create zstd decoder")
		}
		defer dec.Close()
		in = dec
	}

	var hdr [8]byte
	if _, err := io.ReadFull(in, hdr[:]); err != nil {
		return nil, err
	}
	n := columnarOrder.Uint64(hdr[:])

	hits := make([]g4.Hit, 0, n)
	var b [8]byte
	for i := uint64(0); i < n; i++ {
		var h g4.Hit
		if _, err := io.ReadFull(in, b[:]); err != nil {
			return nil, err
		}
		h.Start = columnarOrder.Uint64(b[:])
		if _, err := io.ReadFull(in, b[:]); err != nil {
			return nil, err
		}
		h.End = columnarOrder.Uint64(b[:])
		if _, err := io.ReadFull(in, b[:]); err != nil {
			return nil, err
		}
		h.Length = columnarOrder.Uint64(b[:])
		if _, err := io.ReadFull(in, b[:]); err != nil {
			return nil, err
		}
		h.Tetrads = columnarOrder.Uint64(b[:])

		for _, dst := range [4]*int32{&h.Y1, &h.Y2, &h.Y3, &h.GScore} {
			if _, err := io.ReadFull(in, b[:4]); err != nil {
				return nil, err
			}
			*dst = int32(columnarOrder.Uint32(b[:4]))
		}

		if _, err := io.ReadFull(in, b[:4]); err != nil {
			return nil, err
		}
		seqLen := columnarOrder.Uint32(b[:4])
		seq := make([]byte, seqLen)
		if _, err := io.ReadFull(in, seq); err != nil {
			return nil, err
		}
		h.Sequence = string(seq)

		hits = append(hits, h)
	}
	return hits, nil
}
