// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g4

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"
	"modernc.org/kv"
)

var order = binary.BigEndian

// dedupKey encodes the exact-match dedup key (start, end, sequence)
// so that byte-wise comparison of two keys sorts first by Start, then
// End, then sequence bytes, producing the canonical order as a side
// effect of the ordered sweep.
func dedupKey(h Hit) []byte {
	var buf bytes.Buffer
	var b [8]byte
	order.PutUint64(b[:], h.Start)
	buf.Write(b[:])
	order.PutUint64(b[:], h.End)
	buf.Write(b[:])
	buf.WriteString(h.Sequence)
	return buf.Bytes()
}

// splitDedupKey recovers Start, End and Sequence from a key built by
// dedupKey.
func splitDedupKey(key []byte) (start, end uint64, seq string) {
	start = order.Uint64(key[0:8])
	end = order.Uint64(key[8:16])
	seq = string(key[16:])
	return start, end, seq
}

// marshalHitValue encodes the fields of h not already present in its
// dedup key.
func marshalHitValue(h Hit) []byte {
	var buf bytes.Buffer
	var b [8]byte
	for _, v := range [4]uint64{h.T1, h.T2, h.T3, h.T4} {
		order.PutUint64(b[:], v)
		buf.Write(b[:])
	}
	for _, v := range [4]int32{h.Y1, h.Y2, h.Y3, h.GScore} {
		order.PutUint32(b[:4], uint32(v))
		buf.Write(b[:4])
	}
	order.PutUint64(b[:], h.Tetrads)
	buf.Write(b[:])
	order.PutUint64(b[:], h.Length)
	buf.Write(b[:])
	return buf.Bytes()
}

func unmarshalHitValue(v []byte, start, end uint64, seq string) Hit {
	h := Hit{Start: start, End: end, Sequence: seq}
	h.T1 = order.Uint64(v[0:8])
	h.T2 = order.Uint64(v[8:16])
	h.T3 = order.Uint64(v[16:24])
	h.T4 = order.Uint64(v[24:32])
	h.Y1 = int32(order.Uint32(v[32:36]))
	h.Y2 = int32(order.Uint32(v[36:40]))
	h.Y3 = int32(order.Uint32(v[40:44]))
	h.GScore = int32(order.Uint32(v[44:48]))
	h.Tetrads = order.Uint64(v[48:56])
	h.Length = order.Uint64(v[56:64])
	return h
}

// Consolidate maps a bag of raw hits to their families and per-family
// representatives. Exact-duplicate elimination (Step 1) and the
// canonical sort (Step 2) are both realized as one ordered sweep of a
// kv.DB held entirely in memory (kv.CreateMem); using the memory-backed
// variant rather than a file-backed one keeps the Consolidator
// CPU-bound with no I/O boundary. Output does not depend on the order
// hits arrive in.
func Consolidate(hits []Hit) ([]Family, error) {
	if len(hits) == 0 {
		return nil, nil
	}

	db, err := kv.CreateMem(&kv.Options{Compare: bytes.Compare})
	if err != nil {
		return nil, errors.Wrap(err, "g4: create consolidation store")
	}
	defer db.Close()

	for _, h := range hits {
		key := dedupKey(h)
		existing, err := db.Get(nil, key)
		if err != nil {
			return nil, errors.Wrap(err, "g4: dedup lookup")
		}
		if len(existing) == 0 {
			if err := db.Set(key, marshalHitValue(h)); err != nil {
				return nil, errors.Wrap(err, "g4: dedup insert")
			}
			continue
		}
		cur := unmarshalHitValue(existing, h.Start, h.End, h.Sequence)
		if h.GScore > cur.GScore {
			if err := db.Set(key, marshalHitValue(h)); err != nil {
				return nil, errors.Wrap(err, "g4: dedup update")
			}
		}
	}

	var survivors []Hit
	it, err := db.SeekFirst()
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "g4: seek consolidation store")
	}
	for err == nil {
		var k, v []byte
		k, v, err = it.Next()
		if err != nil {
			break
		}
		start, end, seq := splitDedupKey(k)
		survivors = append(survivors, unmarshalHitValue(v, start, end, seq))
	}
	if err != io.EOF {
		return nil, errors.Wrap(err, "g4: walk consolidation store")
	}

	// Step 2 is already satisfied by the key order above; Step 3
	// sweeps survivors into families by positional overlap.
	sort.SliceStable(survivors, func(i, j int) bool {
		if survivors[i].Start != survivors[j].Start {
			return survivors[i].Start < survivors[j].Start
		}
		return survivors[i].End < survivors[j].End
	})

	var families []Family
	var cur *Family
	for _, h := range survivors {
		if cur != nil && h.Start <= cur.End() {
			cur.Members = append(cur.Members, h)
			continue
		}
		if cur != nil {
			cur.Representative = representative(cur.Members)
			families = append(families, *cur)
		}
		cur = &Family{Members: []Hit{h}}
	}
	if cur != nil {
		cur.Representative = representative(cur.Members)
		families = append(families, *cur)
	}
	return families, nil
}

// representative selects the Step 4 winner for a family: maximum
// GScore, ties broken by lowest Start, then lowest End, then
// lexicographically smallest Sequence.
func representative(members []Hit) Hit {
	best := members[0]
	for _, h := range members[1:] {
		if better(h, best) {
			best = h
		}
	}
	return best
}

func better(a, b Hit) bool {
	if a.GScore != b.GScore {
		return a.GScore > b.GScore
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.End != b.End {
		return a.End < b.End
	}
	return a.Sequence < b.Sequence
}
