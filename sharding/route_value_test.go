/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package sharding

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

func dstr(v string) datum.Datum {
	return datum.NewDString(v)
}

func listStrings(v RouteValue) []string {
	var res []string
	for _, d := range v.(*ListRouteValue).Values {
		res = append(res, d.ValStr())
	}
	return res
}

func TestListRouteValue(t *testing.T) {
	col := NewColumn("ID", "T_Order")
	assert.Equal(t, "t_order.id", col.String())

	{
		v, err := NewListRouteValue(col, []datum.Datum{dint(1), datum.NewDDecimal(decimal.RequireFromString("1.0")), dint(2), datum.NewDNull()}, []int{0})
		assert.Nil(t, err)
		assert.Equal(t, []string{"1", "2"}, listStrings(v))
		assert.Equal(t, "t_order.id in (1, 2)", v.String())
		assert.Equal(t, col, v.ShardingColumn())
	}

	{
		_, err := NewListRouteValue(col, []datum.Datum{dint(1), dstr("a")}, nil)
		assert.Equal(t, ErrIncompatibleValues, errors.Cause(err))
		assert.Equal(t, "sharding.column[t_order.id].INT.with.STRING: sharding.values.are.incompatible", err.Error())
	}

	{
		v, err := NewListRouteValue(col, []datum.Datum{datum.NewDNull()}, nil)
		assert.Nil(t, err)
		_, ok := v.(*AlwaysFalseRouteValue)
		assert.True(t, ok)
		assert.Equal(t, "t_order.id false", v.String())
	}
}

func TestRange(t *testing.T) {
	closed := Range{Lower: dint(5), LowerInclusive: true, Upper: dint(10), UpperInclusive: true}
	assert.Equal(t, "[5, 10]", closed.String())
	open := Range{Lower: dint(5)}
	assert.Equal(t, "(5, +inf)", open.String())
	upper := Range{Upper: dint(5), UpperInclusive: true}
	assert.Equal(t, "(-inf, 5]", upper.String())

	tcases := []struct {
		r   Range
		v   datum.Datum
		res bool
	}{
		{r: closed, v: dint(5), res: true},
		{r: closed, v: dint(10), res: true},
		{r: closed, v: dint(11), res: false},
		{r: open, v: dint(5), res: false},
		{r: open, v: datum.NewDFloat(5.5), res: true},
		{r: upper, v: dint(-100), res: true},
		{r: upper, v: datum.NewDNull(), res: false},
	}
	for _, tcase := range tcases {
		ok, err := tcase.r.Contains(tcase.v)
		assert.Nil(t, err)
		assert.Equal(t, tcase.res, ok, tcase.r.String()+" contains "+tcase.v.ValStr())
	}

	{
		_, err := closed.Contains(dstr("a"))
		assert.NotNil(t, err)
	}

	{
		empty, err := Range{Lower: dint(5), Upper: dint(5), LowerInclusive: true}.IsEmpty()
		assert.Nil(t, err)
		assert.True(t, empty)
		empty, err = Range{Lower: dint(6), Upper: dint(5), LowerInclusive: true, UpperInclusive: true}.IsEmpty()
		assert.Nil(t, err)
		assert.True(t, empty)
		empty, err = open.IsEmpty()
		assert.Nil(t, err)
		assert.False(t, empty)
	}

	{
		p, ok := Range{Lower: dint(5), Upper: dint(5), LowerInclusive: true, UpperInclusive: true}.Point()
		assert.True(t, ok)
		assert.Equal(t, "5", p.ValStr())
		_, ok = closed.Point()
		assert.False(t, ok)
	}
}

func TestRangeRouteValue(t *testing.T) {
	col := NewColumn("id", "t")
	{
		v, err := NewRangeRouteValue(col, Range{Lower: dint(10), Upper: dint(1), LowerInclusive: true, UpperInclusive: true}, nil)
		assert.Nil(t, err)
		_, ok := v.(*AlwaysFalseRouteValue)
		assert.True(t, ok)
	}
	{
		v, err := NewRangeRouteValue(col, Range{Lower: dint(1), Upper: dint(10), LowerInclusive: true}, nil)
		assert.Nil(t, err)
		assert.Equal(t, "t.id in [1, 10)", v.String())
	}
	{
		_, err := NewRangeRouteValue(col, Range{Lower: dint(1), Upper: dstr("z")}, nil)
		assert.Equal(t, ErrIncompatibleValues, errors.Cause(err))
	}
}
