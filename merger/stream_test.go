/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"testing"

	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/planner"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestResultSet(t *testing.T) {
	rs := MockResult([]string{"a", "b"}, []interface{}{1, "x"})
	assert.Equal(t, 2, rs.ColumnCount())
	assert.Equal(t, "b", rs.ColumnName(2))

	_, err := rs.Value(1)
	assert.NotNil(t, err)

	ok, err := rs.Next()
	assert.Nil(t, err)
	assert.True(t, ok)
	v, err := rs.Value(2)
	assert.Nil(t, err)
	assert.Equal(t, "x", v.ValStr())
	_, err = rs.Value(3)
	assert.Equal(t, "merger.result.column[3].out.of.range[2]", err.Error())

	ok, err = rs.Next()
	assert.Nil(t, err)
	assert.False(t, ok)

	rs.Close()
	_, err = rs.Next()
	assert.Equal(t, ErrResultClosed, err)
}

func TestReadAll(t *testing.T) {
	rs, err := ReadAll(MockResult([]string{"a"}, []interface{}{1}, []interface{}{nil}))
	assert.Nil(t, err)
	assert.Equal(t, []string{"a"}, rs.Fields)
	assert.Equal(t, 2, len(rs.Rows))
	assert.True(t, datum.CheckNull(rs.Rows[1].Value(1)))
}

func TestIteratorStream(t *testing.T) {
	fields := []string{"a"}
	s := NewIteratorStream([]QueryResult{
		MockResult(fields, []interface{}{1}, []interface{}{2}),
		MockResult(fields),
		MockResult(fields, []interface{}{3}),
	})
	rows, err := MockRows(s)
	assert.Nil(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"3"}}, rows)
	_, err = s.Value(1)
	assert.Equal(t, ErrResultClosed, err)
	assert.Nil(t, s.Close())
}

func TestOrderByStream(t *testing.T) {
	fields := []string{"a", "name"}
	tests := []struct {
		orderBy []*planner.OrderItem
		results []QueryResult
		want    [][]string
	}{
		{
			orderBy: []*planner.OrderItem{{Index: 1, Direction: planner.ASC}},
			results: []QueryResult{
				MockResult(fields, []interface{}{1, "a"}, []interface{}{4, "d"}, []interface{}{7, "g"}),
				MockResult(fields, []interface{}{2, "b"}, []interface{}{5, "e"}),
				MockResult(fields, []interface{}{3, "c"}, []interface{}{6, "f"}),
			},
			want: [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}, {"4", "d"}, {"5", "e"}, {"6", "f"}, {"7", "g"}},
		},
		{
			orderBy: []*planner.OrderItem{{Index: 2, Direction: planner.ASC}},
			results: []QueryResult{
				MockResult(fields, []interface{}{1, "a"}, []interface{}{2, "C"}),
				MockResult(fields, []interface{}{3, "B"}, []interface{}{4, "d"}),
			},
			want: [][]string{{"1", "a"}, {"3", "B"}, {"2", "C"}, {"4", "d"}},
		},
		{
			orderBy: []*planner.OrderItem{{Index: 2, Direction: planner.ASC, CaseSensitive: true}},
			results: []QueryResult{
				MockResult(fields, []interface{}{1, "C"}, []interface{}{2, "a"}),
				MockResult(fields, []interface{}{3, "B"}, []interface{}{4, "d"}),
			},
			want: [][]string{{"3", "B"}, {"1", "C"}, {"2", "a"}, {"4", "d"}},
		},
		{
			// Ties keep the shard order, NULL is the lowest.
			orderBy: []*planner.OrderItem{{Index: 1, Direction: planner.DESC}},
			results: []QueryResult{
				MockResult(fields, []interface{}{9, "x"}, []interface{}{5, "y"}, []interface{}{nil, "n1"}),
				MockResult(fields, []interface{}{5, "z"}, []interface{}{nil, "n2"}),
			},
			want: [][]string{{"9", "x"}, {"5", "y"}, {"5", "z"}, {"NULL", "n1"}, {"NULL", "n2"}},
		},
	}

	for _, test := range tests {
		s := NewOrderByStream(test.results, test.orderBy)
		rows, err := MockRows(s)
		assert.Nil(t, err)
		assert.Equal(t, test.want, rows)
		assert.Equal(t, "name", s.ColumnName(2))
		assert.Nil(t, s.Close())
	}
}

func TestOrderByStreamIncomparable(t *testing.T) {
	fields := []string{"a"}
	s := NewOrderByStream([]QueryResult{
		MockResult(fields, []interface{}{1}),
		MockResult(fields, []interface{}{"x"}),
	}, []*planner.OrderItem{{Index: 1, Direction: planner.ASC}})
	_, err := s.Next()
	assert.Equal(t, datum.ErrIncomparable, errors.Cause(err))
}

func TestLimitDecorator(t *testing.T) {
	fields := []string{"a"}
	tests := []struct {
		offset, rowcount int
		want             [][]string
	}{
		{0, 2, [][]string{{"1"}, {"2"}}},
		{2, 5, [][]string{{"3"}}},
		{3, 1, nil},
		{1, 0, nil},
	}
	for _, test := range tests {
		rs := MockResult(fields, []interface{}{1}, []interface{}{2}, []interface{}{3})
		rows, err := MockRows(NewLimitDecorator(rs, test.offset, test.rowcount))
		assert.Nil(t, err)
		assert.Equal(t, test.want, rows)
	}
}

func TestProjectDecorator(t *testing.T) {
	rs := MockResult([]string{"a", "DERIVED"}, []interface{}{1, 2})
	p := NewProjectDecorator(rs, 1)
	assert.Equal(t, 1, p.ColumnCount())
	rows, err := MockRows(p)
	assert.Nil(t, err)
	assert.Equal(t, [][]string{{"1"}}, rows)
	_, err = p.Value(2)
	assert.Equal(t, "merger.result.column[2].out.of.range[1]", err.Error())
}

func TestGroupByStreamAggregateError(t *testing.T) {
	ctx := &planner.SelectContext{
		Aggregates: []*planner.AggregateItem{{Field: "x", Type: "SUM", Index: 2}},
		GroupBy:    []*planner.OrderItem{{Index: 1}},
		OrderBy:    []*planner.OrderItem{{Index: 1}},
	}
	s := NewGroupByStream(ctx, []QueryResult{MockResult([]string{"a", "x"}, []interface{}{1, 2})})
	_, err := s.Next()
	assert.Equal(t, "merger.aggregate[x].has.no.units", err.Error())
}
