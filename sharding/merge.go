/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package sharding

import (
	"github.com/radondb/shardcore/expression/datum"

	"github.com/pkg/errors"
)

// MergeRouteValues intersects the route values collected for the same
// column within one AND-group.
func MergeRouteValues(values ...RouteValue) (RouteValue, error) {
	if len(values) == 0 {
		return nil, errors.New("sharding.merge.route.values.can.not.be.empty")
	}
	res := values[0]
	for _, v := range values[1:] {
		if v.ShardingColumn() != res.ShardingColumn() {
			return nil, errors.Errorf("sharding.merge.column[%s].with.column[%s]", res.ShardingColumn(), v.ShardingColumn())
		}
		merged, err := merge(res, v)
		if err != nil {
			return nil, err
		}
		res = merged
	}
	return res, nil
}

func merge(x, y RouteValue) (RouteValue, error) {
	switch x := x.(type) {
	case *AlwaysFalseRouteValue:
		return x, nil
	case *ListRouteValue:
		switch y := y.(type) {
		case *AlwaysFalseRouteValue:
			return y, nil
		case *ListRouteValue:
			return mergeListList(x, y)
		case *RangeRouteValue:
			return mergeListRange(x, y)
		}
	case *RangeRouteValue:
		switch y := y.(type) {
		case *AlwaysFalseRouteValue:
			return y, nil
		case *ListRouteValue:
			return mergeListRange(y, x)
		case *RangeRouteValue:
			return mergeRangeRange(x, y)
		}
	}
	return nil, errors.Errorf("sharding.unsupported.route.value[%T].with[%T]", x, y)
}

func mergeListList(x, y *ListRouteValue) (RouteValue, error) {
	if !datum.Comparable(x.Values[0], y.Values[0]) {
		return nil, incompatibleError(x.Column, x.Values[0], y.Values[0])
	}
	keys := make(map[string]struct{}, len(y.Values))
	for _, v := range y.Values {
		keys[datum.Key(v, true)] = struct{}{}
	}
	var values []datum.Datum
	for _, v := range x.Values {
		if _, ok := keys[datum.Key(v, true)]; ok {
			values = append(values, v)
		}
	}
	return NewListRouteValue(x.Column, values, mergeIndexes(x.ParameterIndexes, y.ParameterIndexes))
}

func mergeListRange(x *ListRouteValue, y *RangeRouteValue) (RouteValue, error) {
	var values []datum.Datum
	for _, v := range x.Values {
		ok, err := y.Range.Contains(v)
		if err != nil {
			bound := y.Range.Lower
			if bound == nil {
				bound = y.Range.Upper
			}
			return nil, incompatibleError(x.Column, v, bound)
		}
		if ok {
			values = append(values, v)
		}
	}
	return NewListRouteValue(x.Column, values, mergeIndexes(x.ParameterIndexes, y.ParameterIndexes))
}

func mergeRangeRange(x, y *RangeRouteValue) (RouteValue, error) {
	r, err := x.Range.Intersect(y.Range)
	if err != nil {
		return nil, errors.Wrapf(ErrIncompatibleValues, "sharding.column[%s].range%s.with.range%s", x.Column, x.Range, y.Range)
	}
	return NewRangeRouteValue(x.Column, r, mergeIndexes(x.ParameterIndexes, y.ParameterIndexes))
}
