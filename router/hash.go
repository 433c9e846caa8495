/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"fmt"
	"hash/crc64"
	"sort"
	"strconv"
	"strings"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/sharding"

	jump "github.com/lithammer/go-jump-consistent-hash"
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var crcTable = crc64.MakeTable(crc64.ECMA)

// HashRange is the slot range [Start, End) of a segment.
type HashRange struct {
	Start int
	End   int
}

// String returns start-end info.
func (r *HashRange) String() string {
	return fmt.Sprintf("[%v-%v)", r.Start, r.End)
}

// Less orders the ranges by start.
func (r *HashRange) Less(b KeyRange) bool {
	return r.Start < b.(*HashRange).Start
}

// parseHashRange parses the "start-end" segment of a partition.
func parseHashRange(segment string) (*HashRange, error) {
	bounds := strings.Split(segment, "-")
	if len(bounds) != 2 {
		return nil, errors.Errorf("hash.partition.segment.malformed[%v]", segment)
	}
	start, err := strconv.Atoi(bounds[0])
	if err != nil {
		return nil, errors.Errorf("hash.partition.segment.malformed[%v].start.can.not.parser.to.int", segment)
	}
	end, err := strconv.Atoi(bounds[1])
	if err != nil {
		return nil, errors.Errorf("hash.partition.segment.malformed[%v].end.can.not.parser.to.int", segment)
	}
	if end <= start {
		return nil, errors.Errorf("hash.partition.segment.malformed[%v].start[%v]>=end[%v]", segment, start, end)
	}
	return &HashRange{Start: start, End: end}, nil
}

// Hash spreads the values over the slots with jump consistent hashing,
// each segment owns a slot range.
type Hash struct {
	log   *xlog.Log
	slots int
	typ   MethodType
	conf  *config.TableConfig

	// owner[slot] is the segment index
	owner    []int
	Segments []Segment `json:",omitempty"`
}

// NewHash creates new hash.
func NewHash(log *xlog.Log, slots int, conf *config.TableConfig) *Hash {
	return &Hash{
		log:   log,
		conf:  conf,
		slots: slots,
		typ:   MethodTypeHash,
	}
}

// Build parses the segments and checks they cover every slot once.
func (h *Hash) Build() error {
	segments := make([]Segment, 0, len(h.conf.Partitions))
	for _, part := range h.conf.Partitions {
		r, err := parseHashRange(part.Segment)
		if err != nil {
			return err
		}
		segments = append(segments, Segment{Table: part.Table, Backend: part.Backend, Range: r})
	}
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Range.Less(segments[j].Range)
	})

	owner := make([]int, h.slots)
	for i := range owner {
		owner[i] = -1
	}
	covered := 0
	for idx, segment := range segments {
		r := segment.Range.(*HashRange)
		if r.End > h.slots {
			return errors.Errorf("hash.partition.segment[%v-%v].out.of.slots[%v]", r.Start, r.End, h.slots)
		}
		for i := r.Start; i < r.End; i++ {
			if owner[i] != -1 {
				return errors.Errorf("hash.partition.segment[%v-%v].overlapped[%v]", r.Start, r.End, i)
			}
			owner[i] = idx
			covered++
		}
	}
	if covered != h.slots {
		return errors.Errorf("hash.partition.last.segment[%v].upper.bound.must.be[%v]", covered, h.slots)
	}
	h.owner = owner
	h.Segments = segments
	return nil
}

// Lookup used to lookup segment(s) through the route value.
// Only the list values and the single point ranges can be hashed,
// other ranges reach every segment.
func (h *Hash) Lookup(v sharding.RouteValue) ([]int, error) {
	switch v := v.(type) {
	case *sharding.AlwaysFalseRouteValue:
		return nil, nil
	case *sharding.ListRouteValue:
		seen := make(map[int]struct{}, len(v.Values))
		idxs := make([]int, 0, len(v.Values))
		for _, d := range v.Values {
			idx := h.index(d)
			if _, ok := seen[idx]; !ok {
				seen[idx] = struct{}{}
				idxs = append(idxs, idx)
			}
		}
		sort.Ints(idxs)
		return idxs, nil
	case *sharding.RangeRouteValue:
		if point, ok := v.Range.Point(); ok {
			return []int{h.index(point)}, nil
		}
	}
	return allIndexes(len(h.Segments)), nil
}

// GetSlot returns the slot of the value.
func (h *Hash) GetSlot(d datum.Datum) int {
	return int(jump.Hash(hashKey(d), int32(h.slots)))
}

func (h *Hash) index(d datum.Datum) int {
	return h.owner[h.GetSlot(d)]
}

// hashKey folds the numeric values to the integer part,
// the others are hashed by crc64 of the string form.
func hashKey(d datum.Datum) uint64 {
	switch d.Type() {
	case datum.TypeInt, datum.TypeFloat, datum.TypeDecimal:
		v, _ := d.ValInt()
		return uint64(v)
	}
	return crc64.Checksum([]byte(d.ValStr()), crcTable)
}

// Type returns the hash type.
func (h *Hash) Type() MethodType {
	return h.typ
}

// GetSegments returns Segments.
func (h *Hash) GetSegments() []Segment {
	return h.Segments
}
