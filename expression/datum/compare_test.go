/*
 * Radon
 *
 * Copyright 2020 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package datum

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	t1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Second)
	tcases := []struct {
		v1            Datum
		v2            Datum
		caseSensitive bool
		res           int
	}{
		{
			v1:  NewDNull(),
			v2:  NewDNull(),
			res: 0,
		},
		{
			v1:  NewDNull(),
			v2:  NewDString("2"),
			res: -1,
		},
		{
			v1:  NewDInt(2, false),
			v2:  NewDNull(),
			res: 1,
		},
		{
			v1:  NewDInt(2, false),
			v2:  NewDInt(1, false),
			res: 1,
		},
		{
			v1:  NewDInt(-1, false),
			v2:  NewDInt(-1, true),
			res: -1,
		},
		{
			v1:  NewDInt(1, false),
			v2:  NewDFloat(1.5),
			res: -1,
		},
		{
			v1:  NewDDecimal(decimal.RequireFromString("2.00")),
			v2:  NewDInt(2, false),
			res: 0,
		},
		{
			v1:            NewDString("abc"),
			v2:            NewDString("ABC"),
			caseSensitive: true,
			res:           1,
		},
		{
			v1:  NewDString("abc"),
			v2:  NewDString("ABC"),
			res: 0,
		},
		{
			v1:  NewDTime(t1),
			v2:  NewDTime(t2),
			res: -1,
		},
	}
	for _, tcase := range tcases {
		res, err := Compare(tcase.v1, tcase.v2, tcase.caseSensitive)
		assert.Nil(t, err)
		assert.Equal(t, tcase.res, res)
	}
}

func TestCompareIncomparable(t *testing.T) {
	tcases := []struct {
		v1 Datum
		v2 Datum
	}{
		{
			v1: NewDInt(1, false),
			v2: NewDString("1"),
		},
		{
			v1: NewDTime(time.Now()),
			v2: NewDFloat(1),
		},
		{
			v1: NewDString("x"),
			v2: NewDTime(time.Now()),
		},
	}
	for _, tcase := range tcases {
		_, err := Compare(tcase.v1, tcase.v2, true)
		assert.NotNil(t, err)
		assert.Equal(t, ErrIncomparable, errors.Cause(err))
		assert.False(t, Comparable(tcase.v1, tcase.v2))
	}
	assert.True(t, Comparable(NewDNull(), NewDString("x")))
}
