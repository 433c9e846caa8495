/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package expression

import (
	"testing"

	"github.com/radondb/shardcore/expression/datum"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dint(v int64) datum.Datum {
	return datum.NewDInt(v, false)
}

func dnull() datum.Datum {
	return datum.NewDNull()
}

func TestParseAggrType(t *testing.T) {
	assert.Equal(t, AggrTypeCount, ParseAggrType("count"))
	assert.Equal(t, AggrTypeAvg, ParseAggrType("Avg"))
	assert.Equal(t, AggrTypeNull, ParseAggrType("concat"))
}

func TestAggregation(t *testing.T) {
	tcases := []struct {
		typ      AggrType
		distinct bool
		rows     [][]datum.Datum
		res      string
	}{
		// Partial counts of the shards.
		{AggrTypeCount, false, [][]datum.Datum{{dint(3)}, {dint(0)}, {dint(4)}}, "7"},
		{AggrTypeCount, false, nil, "0"},
		{AggrTypeCount, true, [][]datum.Datum{{dint(1)}, {dint(2)}, {dint(1)}, {dnull()}}, "2"},
		{AggrTypeSum, false, [][]datum.Datum{{dint(10)}, {dnull()}, {dint(20)}}, "30"},
		{AggrTypeSum, false, [][]datum.Datum{{datum.NewDDecimal(decimal.New(15, -1))}, {dint(2)}}, "3.5"},
		{AggrTypeSum, false, nil, "NULL"},
		{AggrTypeSum, true, [][]datum.Datum{{dint(10)}, {dint(10)}, {dint(5)}}, "15"},
		{AggrTypeMax, false, [][]datum.Datum{{dint(3)}, {dint(9)}, {dnull()}, {dint(-1)}}, "9"},
		{AggrTypeMin, false, [][]datum.Datum{{dint(3)}, {dint(9)}, {dnull()}, {dint(-1)}}, "-1"},
		{AggrTypeMax, false, [][]datum.Datum{{datum.NewDString("b")}, {datum.NewDString("a")}}, "b"},
		{AggrTypeMin, false, [][]datum.Datum{{dnull()}}, "NULL"},
	}
	for _, tcase := range tcases {
		aggr, err := NewAggregation(tcase.typ, tcase.distinct, true)
		assert.Nil(t, err)
		assert.Equal(t, tcase.typ, aggr.Type())
		for _, row := range tcase.rows {
			err := aggr.Merge(row)
			assert.Nil(t, err)
		}
		res := aggr.Result()
		if tcase.res == "NULL" {
			assert.True(t, datum.CheckNull(res))
		} else {
			assert.Equal(t, tcase.res, res.ValStr())
		}
		// Read twice.
		assert.Equal(t, res, aggr.Result())
	}
}

func TestAggregationDistinctCase(t *testing.T) {
	{
		aggr, err := NewAggregation(AggrTypeCount, true, false)
		assert.Nil(t, err)
		assert.Nil(t, aggr.Merge([]datum.Datum{datum.NewDString("a"), datum.NewDString("A"), datum.NewDString("b")}))
		assert.Equal(t, "2", aggr.Result().ValStr())
	}

	{
		aggr, err := NewAggregation(AggrTypeCount, true, true)
		assert.Nil(t, err)
		assert.Nil(t, aggr.Merge([]datum.Datum{datum.NewDString("a"), datum.NewDString("A"), datum.NewDString("b")}))
		assert.Equal(t, "3", aggr.Result().ValStr())
	}
}

func TestAggregationErrors(t *testing.T) {
	{
		_, err := NewAggregation(AggrTypeAvg, false, true)
		assert.Equal(t, "aggregation.unsupported.type[AVG]", err.Error())
	}

	{
		aggr, err := NewAggregation(AggrTypeSum, false, true)
		assert.Nil(t, err)
		err = aggr.Merge([]datum.Datum{datum.NewDString("x")})
		assert.Equal(t, datum.ErrIncomparable, errors.Cause(err))
	}

	{
		aggr, err := NewAggregation(AggrTypeCount, false, true)
		assert.Nil(t, err)
		err = aggr.Merge([]datum.Datum{datum.NewDString("x")})
		assert.Equal(t, datum.ErrIncomparable, errors.Cause(err))
	}

	{
		aggr, err := NewAggregation(AggrTypeMax, false, true)
		assert.Nil(t, err)
		assert.Nil(t, aggr.Merge([]datum.Datum{dint(1)}))
		err = aggr.Merge([]datum.Datum{datum.NewDString("x")})
		assert.Equal(t, datum.ErrIncomparable, errors.Cause(err))
	}

	{
		aggr, err := NewAggregation(AggrTypeMin, false, true)
		assert.Nil(t, err)
		aggr.Result()
		err = aggr.Merge([]datum.Datum{dint(1)})
		assert.Equal(t, "aggregation[MIN].merge.after.result", err.Error())
	}
}

func TestAvg(t *testing.T) {
	tcases := []struct {
		sum   datum.Datum
		count datum.Datum
		res   string
	}{
		{dint(30), dint(4), "7.5"},
		{datum.NewDDecimal(decimal.New(10, 0)), dint(3), "3.3333"},
		{datum.NewDFloat(1.5), dint(3), "0.5"},
		{dnull(), dint(0), "NULL"},
		{dint(0), dint(0), "NULL"},
	}
	for _, tcase := range tcases {
		res, err := Avg(tcase.sum, tcase.count)
		assert.Nil(t, err)
		if tcase.res == "NULL" {
			assert.True(t, datum.CheckNull(res))
		} else {
			assert.Equal(t, tcase.res, res.ValStr())
		}
	}
}
