/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package sharding

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/radondb/shardcore/expression/datum"

	"github.com/pkg/errors"
)

// RouteValue is one of ListRouteValue, RangeRouteValue or
// AlwaysFalseRouteValue.
type RouteValue interface {
	ShardingColumn() Column
	String() string
	routeValue()
}

func (*ListRouteValue) routeValue()        {}
func (*RangeRouteValue) routeValue()       {}
func (*AlwaysFalseRouteValue) routeValue() {}

// ListRouteValue means the column equals one of the values.
type ListRouteValue struct {
	Column           Column
	Values           []datum.Datum
	ParameterIndexes []int
}

// NewListRouteValue creates the list route value, NULL values are removed
// and duplicates are folded. An empty list never matches.
func NewListRouteValue(column Column, values []datum.Datum, paramIndexes []int) (RouteValue, error) {
	seen := make(map[string]struct{}, len(values))
	list := make([]datum.Datum, 0, len(values))
	for _, v := range values {
		if datum.CheckNull(v) {
			continue
		}
		if len(list) > 0 && !datum.Comparable(list[0], v) {
			return nil, incompatibleError(column, list[0], v)
		}
		key := datum.Key(v, true)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		list = append(list, v)
	}
	if len(list) == 0 {
		return &AlwaysFalseRouteValue{Column: column}, nil
	}
	return &ListRouteValue{
		Column:           column,
		Values:           list,
		ParameterIndexes: paramIndexes,
	}, nil
}

// ShardingColumn returns the column.
func (v *ListRouteValue) ShardingColumn() Column {
	return v.Column
}

// String returns the list.
func (v *ListRouteValue) String() string {
	buf := bytes.NewBufferString(v.Column.String())
	buf.WriteString(" in (")
	for i, d := range v.Values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(d.ValStr())
	}
	buf.WriteString(")")
	return buf.String()
}

// Range is an interval, a nil bound is unbounded.
type Range struct {
	Lower          datum.Datum
	LowerInclusive bool
	Upper          datum.Datum
	UpperInclusive bool
}

// Contains returns true if the value falls in the range.
func (r Range) Contains(d datum.Datum) (bool, error) {
	if datum.CheckNull(d) {
		return false, nil
	}
	if r.Lower != nil {
		cmp, err := datum.Compare(d, r.Lower, true)
		if err != nil {
			return false, err
		}
		if cmp < 0 || (cmp == 0 && !r.LowerInclusive) {
			return false, nil
		}
	}
	if r.Upper != nil {
		cmp, err := datum.Compare(d, r.Upper, true)
		if err != nil {
			return false, err
		}
		if cmp > 0 || (cmp == 0 && !r.UpperInclusive) {
			return false, nil
		}
	}
	return true, nil
}

// IsEmpty returns true if no value can fall in the range.
func (r Range) IsEmpty() (bool, error) {
	if r.Lower == nil || r.Upper == nil {
		return false, nil
	}
	cmp, err := datum.Compare(r.Lower, r.Upper, true)
	if err != nil {
		return false, err
	}
	return cmp > 0 || (cmp == 0 && !(r.LowerInclusive && r.UpperInclusive)), nil
}

// Point returns the single value of a [v, v] range.
func (r Range) Point() (datum.Datum, bool) {
	if r.Lower == nil || r.Upper == nil || !r.LowerInclusive || !r.UpperInclusive {
		return nil, false
	}
	if cmp, err := datum.Compare(r.Lower, r.Upper, true); err != nil || cmp != 0 {
		return nil, false
	}
	return r.Lower, true
}

// Intersect returns the intersection of the two ranges.
func (r Range) Intersect(o Range) (Range, error) {
	res := r
	if o.Lower != nil {
		if res.Lower == nil {
			res.Lower, res.LowerInclusive = o.Lower, o.LowerInclusive
		} else {
			cmp, err := datum.Compare(o.Lower, res.Lower, true)
			if err != nil {
				return res, err
			}
			switch {
			case cmp > 0:
				res.Lower, res.LowerInclusive = o.Lower, o.LowerInclusive
			case cmp == 0:
				res.LowerInclusive = res.LowerInclusive && o.LowerInclusive
			}
		}
	}
	if o.Upper != nil {
		if res.Upper == nil {
			res.Upper, res.UpperInclusive = o.Upper, o.UpperInclusive
		} else {
			cmp, err := datum.Compare(o.Upper, res.Upper, true)
			if err != nil {
				return res, err
			}
			switch {
			case cmp < 0:
				res.Upper, res.UpperInclusive = o.Upper, o.UpperInclusive
			case cmp == 0:
				res.UpperInclusive = res.UpperInclusive && o.UpperInclusive
			}
		}
	}
	return res, nil
}

// String returns the interval notation.
func (r Range) String() string {
	lower, upper := "(-inf", "+inf)"
	if r.Lower != nil {
		lower = "(" + r.Lower.ValStr()
		if r.LowerInclusive {
			lower = "[" + r.Lower.ValStr()
		}
	}
	if r.Upper != nil {
		upper = r.Upper.ValStr() + ")"
		if r.UpperInclusive {
			upper = r.Upper.ValStr() + "]"
		}
	}
	return lower + ", " + upper
}

// RangeRouteValue means the column falls in the range.
type RangeRouteValue struct {
	Column           Column
	Range            Range
	ParameterIndexes []int
}

// NewRangeRouteValue creates the range route value.
// An empty range never matches.
func NewRangeRouteValue(column Column, r Range, paramIndexes []int) (RouteValue, error) {
	empty, err := r.IsEmpty()
	if err != nil {
		return nil, incompatibleError(column, r.Lower, r.Upper)
	}
	if empty {
		return &AlwaysFalseRouteValue{Column: column}, nil
	}
	return &RangeRouteValue{
		Column:           column,
		Range:            r,
		ParameterIndexes: paramIndexes,
	}, nil
}

// ShardingColumn returns the column.
func (v *RangeRouteValue) ShardingColumn() Column {
	return v.Column
}

// String returns the range.
func (v *RangeRouteValue) String() string {
	return fmt.Sprintf("%s in %s", v.Column, v.Range)
}

// AlwaysFalseRouteValue never matches any row.
type AlwaysFalseRouteValue struct {
	Column Column
}

// ShardingColumn returns the column.
func (v *AlwaysFalseRouteValue) ShardingColumn() Column {
	return v.Column
}

// String returns false.
func (v *AlwaysFalseRouteValue) String() string {
	return fmt.Sprintf("%s false", v.Column)
}

func incompatibleError(column Column, x, y datum.Datum) error {
	return errors.Wrapf(ErrIncompatibleValues, "sharding.column[%s].%v.with.%v", column, x.Type(), y.Type())
}

func mergeIndexes(a, b []int) []int {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(a)+len(b))
	var res []int
	for _, idx := range append(append([]int{}, a...), b...) {
		if _, ok := seen[idx]; !ok {
			seen[idx] = struct{}{}
			res = append(res, idx)
		}
	}
	sort.Ints(res)
	return res
}
