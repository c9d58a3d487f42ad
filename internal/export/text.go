// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export implements the detection pipeline's output contracts:
// tabular text, columnar binary, and a bedGraph family density
// sidecar.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kortschak/g4scan/internal/g4"
)

// Columns is the normative column order for both the text and
// columnar formats.
var Columns = []string{"start", "end", "length", "tetrads", "y1", "y2", "y3", "gscore", "sequence"}

// WriteText writes hits as CSV, the tabular text output format.
// encoding/csv implements RFC 4180 quoting (quote only fields
// containing the separator, a quote, or a newline; double embedded
// quotes), so there is no hand-rolled quoting logic here.
func WriteText(w io.Writer, hits []g4.Hit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	row := make([]string, len(Columns))
	for _, h := range hits {
		row[0] = strconv.FormatUint(h.Start, 10)
		row[1] = strconv.FormatUint(h.End, 10)
		row[2] = strconv.FormatUint(h.Length, 10)
		row[3] = strconv.FormatUint(h.Tetrads, 10)
		row[4] = strconv.FormatInt(int64(h.Y1), 10)
		row[5] = strconv.FormatInt(int64(h.Y2), 10)
		row[6] = strconv.FormatInt(int64(h.Y3), 10)
		row[7] = strconv.FormatInt(int64(h.GScore), 10)
		row[8] = h.Sequence
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadText parses hits written by WriteText.
func ReadText(r io.Reader) ([]g4.Hit, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	if len(header) != len(Columns) {
		return nil, errUnexpectedColumns
	}
	var hits []g4.Hit
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		h, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func parseRow(row []string) (g4.Hit, error) {
	var h g4.Hit
	var err error
	parse := func(i int, dst *uint64) {
		if err != nil {
			return
		}
		*dst, err = strconv.ParseUint(row[i], 10, 64)
	}
	parse32 := func(i int, dst *int32) {
		if err != nil {
			return
		}
		var v int64
		v, err = strconv.ParseInt(row[i], 10, 32)
		*dst = int32(v)
	}
	parse(0, &h.Start)
	parse(1, &h.End)
	parse(2, &h.Length)
	parse(3, &h.Tetrads)
	parse32(4, &h.Y1)
	parse32(5, &h.Y2)
	parse32(6, &h.Y3)
	parse32(7, &h.GScore)
	h.Sequence = row[8]
	return h, err
}

type textError string

func (e textError) Error() string { return string(e) }

const errUnexpectedColumns = textError("g4scan/export: unexpected column count in tabular text")
