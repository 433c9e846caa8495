/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package expression

import (
	"strings"

	"github.com/radondb/shardcore/expression/datum"

	"github.com/pkg/errors"
)

// AggrType is the aggregate function kind.
type AggrType string

const (
	// AggrTypeNull is not an aggregate.
	AggrTypeNull AggrType = ""
	// AggrTypeCount enum.
	AggrTypeCount AggrType = "COUNT"
	// AggrTypeSum enum.
	AggrTypeSum AggrType = "SUM"
	// AggrTypeMax enum.
	AggrTypeMax AggrType = "MAX"
	// AggrTypeMin enum.
	AggrTypeMin AggrType = "MIN"
	// AggrTypeAvg enum, always derived into SUM and COUNT.
	AggrTypeAvg AggrType = "AVG"
)

// ParseAggrType returns the kind of the function name, AggrTypeNull if it
// is not an aggregate.
func ParseAggrType(name string) AggrType {
	switch typ := AggrType(strings.ToUpper(name)); typ {
	case AggrTypeCount, AggrTypeSum, AggrTypeMax, AggrTypeMin, AggrTypeAvg:
		return typ
	}
	return AggrTypeNull
}

// Aggregation is the accumulator of one aggregate column for one group.
// It is fed by Merge and read by Result, it can not be fed once read.
type Aggregation struct {
	typ           AggrType
	distinct      bool
	caseSensitive bool

	count int64
	val   datum.Datum
	// seen holds the keys of the values folded when distinct.
	seen map[string]struct{}
	read bool
}

// NewAggregation creates the accumulator, AVG has no accumulator of its own.
func NewAggregation(typ AggrType, distinct, caseSensitive bool) (*Aggregation, error) {
	switch typ {
	case AggrTypeCount, AggrTypeSum, AggrTypeMax, AggrTypeMin:
	default:
		return nil, errors.Errorf("aggregation.unsupported.type[%s]", typ)
	}
	aggr := &Aggregation{
		typ:           typ,
		distinct:      distinct,
		caseSensitive: caseSensitive,
	}
	if distinct {
		aggr.seen = make(map[string]struct{})
	}
	return aggr, nil
}

// Type returns the kind.
func (aggr *Aggregation) Type() AggrType {
	return aggr.typ
}

// Merge folds the values one shard row contributes. NULLs are skipped.
// A non-distinct COUNT adds the partial count of the shard, a distinct
// one counts the values not seen yet.
func (aggr *Aggregation) Merge(values []datum.Datum) error {
	if aggr.read {
		return errors.Errorf("aggregation[%s].merge.after.result", aggr.typ)
	}
	for _, v := range values {
		if datum.CheckNull(v) {
			continue
		}
		if aggr.distinct {
			key := datum.Key(v, aggr.caseSensitive)
			if _, ok := aggr.seen[key]; ok {
				continue
			}
			aggr.seen[key] = struct{}{}
		}
		if err := aggr.update(v); err != nil {
			return err
		}
	}
	return nil
}

func (aggr *Aggregation) update(v datum.Datum) error {
	switch aggr.typ {
	case AggrTypeCount:
		if aggr.distinct {
			aggr.count++
			return nil
		}
		if !datum.IsNumeric(v) {
			return errors.Wrapf(datum.ErrIncomparable, "aggregation.count.value[%s].type[%v]", v.ValStr(), v.Type())
		}
		n, _ := v.ValInt()
		aggr.count += n
	case AggrTypeSum:
		if aggr.val == nil {
			if !datum.IsNumeric(v) {
				return errors.Wrapf(datum.ErrIncomparable, "aggregation.sum.value[%s].type[%v]", v.ValStr(), v.Type())
			}
			aggr.val = v
			return nil
		}
		sum, err := datum.Add(aggr.val, v)
		if err != nil {
			return err
		}
		aggr.val = sum
	case AggrTypeMax, AggrTypeMin:
		if aggr.val == nil {
			aggr.val = v
			return nil
		}
		cmp, err := datum.Compare(v, aggr.val, aggr.caseSensitive)
		if err != nil {
			return err
		}
		if (aggr.typ == AggrTypeMax && cmp > 0) || (aggr.typ == AggrTypeMin && cmp < 0) {
			aggr.val = v
		}
	}
	return nil
}

// Result returns the folded value, COUNT yields 0 and the others NULL
// when nothing was folded.
func (aggr *Aggregation) Result() datum.Datum {
	aggr.read = true
	if aggr.typ == AggrTypeCount {
		return datum.NewDInt(aggr.count, false)
	}
	if aggr.val == nil {
		return datum.NewDNull()
	}
	return aggr.val
}

// Avg divides the derived sum by the derived count, a zero count is NULL.
func Avg(sum, count datum.Datum) (datum.Datum, error) {
	return datum.Div(sum, count)
}
