/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"sort"
	"strconv"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/sharding"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// List tuple.
type List struct {
	log *xlog.Log

	// method
	typ MethodType

	// table config
	conf *config.TableConfig

	// list value of each segment
	values []datum.Datum

	Segments []Segment `json:",omitempty"`
}

// NewList creates new list.
func NewList(log *xlog.Log, conf *config.TableConfig) *List {
	return &List{
		log:      log,
		conf:     conf,
		typ:      MethodTypeList,
		Segments: make([]Segment, 0, 16),
	}
}

// Build used to build list segments from schema config
func (list *List) Build() error {
	seen := make(map[string]struct{})
	for _, part := range list.conf.Partitions {
		if part.ListValue == "" {
			return errors.Errorf("list.partition[%s].listvalue.can.not.be.empty", part.Table)
		}
		value := listValueDatum(part.ListValue)
		key := datum.Key(value, false)
		if _, ok := seen[key]; ok {
			return errors.Errorf("list.partition[%s].listvalue[%s].duplicate", part.Table, part.ListValue)
		}
		seen[key] = struct{}{}

		list.values = append(list.values, value)
		list.Segments = append(list.Segments, Segment{
			Table:     part.Table,
			Backend:   part.Backend,
			ListValue: part.ListValue,
		})
	}
	return nil
}

// listValueDatum reads the configured value as a number if it is one.
func listValueDatum(s string) datum.Datum {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return datum.NewDInt(v, false)
	}
	if v, err := decimal.NewFromString(s); err == nil {
		return datum.NewDDecimal(v)
	}
	return datum.NewDString(s)
}

// Lookup used to lookup segment(s) through the route value.
// A list value without partition is an error.
func (list *List) Lookup(v sharding.RouteValue) ([]int, error) {
	switch v := v.(type) {
	case *sharding.AlwaysFalseRouteValue:
		return nil, nil
	case *sharding.ListRouteValue:
		var idxs []int
		for _, d := range v.Values {
			idx, err := list.GetIndex(d)
			if err != nil {
				return nil, err
			}
			idxs = append(idxs, idx)
		}
		return uniqueSorted(idxs), nil
	case *sharding.RangeRouteValue:
		var idxs []int
		for i, value := range list.values {
			if !datum.Comparable(value, bound(v.Range)) {
				idxs = append(idxs, i)
				continue
			}
			ok, err := v.Range.Contains(value)
			if err != nil {
				return nil, err
			}
			if ok {
				idxs = append(idxs, i)
			}
		}
		return idxs, nil
	}
	return allIndexes(len(list.Segments)), nil
}

func bound(r sharding.Range) datum.Datum {
	if r.Lower != nil {
		return r.Lower
	}
	return r.Upper
}

// GetIndex returns the segment index of the value.
func (list *List) GetIndex(d datum.Datum) (int, error) {
	for idx, value := range list.values {
		if !datum.Comparable(d, value) {
			continue
		}
		if cmp, err := datum.Compare(d, value, false); err == nil && cmp == 0 {
			return idx, nil
		}
	}
	return -1, errors.Errorf("list.table[%s].has.no.partition.for.value[%s]", list.conf.Name, d.ValStr())
}

// Type returns the list type.
func (list *List) Type() MethodType {
	return list.typ
}

// GetSegments returns Segments.
func (list *List) GetSegments() []Segment {
	return list.Segments
}

func uniqueSorted(idxs []int) []int {
	seen := make(map[int]struct{}, len(idxs))
	res := make([]int, 0, len(idxs))
	for _, idx := range idxs {
		if _, ok := seen[idx]; !ok {
			seen[idx] = struct{}{}
			res = append(res, idx)
		}
	}
	sort.Ints(res)
	return res
}
