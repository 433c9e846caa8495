/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"fmt"
	"testing"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/planner"
	"github.com/radondb/shardcore/xbase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

func mockContext(t *testing.T, query string, conf *config.MergeConfig) *planner.SelectContext {
	node, err := sqlparser.Parse(query)
	assert.Nil(t, err)
	plan := planner.NewSelectPlan(xbase.NewNullLog(), "sbtest", node.(*sqlparser.Select), conf)
	assert.Nil(t, plan.Build())
	return plan.Context
}

func mockMerge(t *testing.T, ctx *planner.SelectContext, conf *config.MergeConfig, results ...QueryResult) [][]string {
	merged, err := Merge(xbase.NewNullLog(), ctx, results, conf)
	assert.Nil(t, err)
	rows, err := MockRows(merged)
	assert.Nil(t, err)
	assert.Nil(t, merged.Close())
	return rows
}

func TestMergeSumAcrossShards(t *testing.T) {
	ctx := mockContext(t, "select sum(amount) from t_order", nil)
	fields := []string{"sum(amount)"}
	r1 := MockResult(fields, []interface{}{10})
	r2 := MockResult(fields, []interface{}{20})

	rows := mockMerge(t, ctx, nil, r1, r2)
	assert.Equal(t, [][]string{{"30"}}, rows)
}

func TestMergeEmptyAggregateDefaults(t *testing.T) {
	node := "select count(*), max(a) from t_order"
	fields := []string{"count(*)", "max(a)"}

	// Shards answering their own empty aggregate.
	{
		ctx := mockContext(t, node, nil)
		r1 := MockResult(fields, []interface{}{0, nil})
		r2 := MockResult(fields, []interface{}{0, nil})
		rows := mockMerge(t, ctx, nil, r1, r2)
		assert.Equal(t, [][]string{{"0", "NULL"}}, rows)
	}

	// Shards answering no rows.
	{
		ctx := mockContext(t, node, nil)
		rows := mockMerge(t, ctx, nil, MockResult(fields), MockResult(fields))
		assert.Equal(t, [][]string{{"0", "NULL"}}, rows)
	}

	// No shard routed.
	{
		ctx := mockContext(t, node, nil)
		merged, err := Merge(xbase.NewNullLog(), ctx, nil, nil)
		assert.Nil(t, err)
		assert.Equal(t, 2, merged.ColumnCount())
		assert.Equal(t, "count(*)", merged.ColumnName(1))
		rows, err := MockRows(merged)
		assert.Nil(t, err)
		assert.Equal(t, [][]string{{"0", "NULL"}}, rows)
	}
}

func TestMergeNoShardPlainSelect(t *testing.T) {
	ctx := mockContext(t, "select a, b from t_order", nil)
	merged, err := Merge(xbase.NewNullLog(), ctx, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, merged.ColumnCount())
	rows, err := MockRows(merged)
	assert.Nil(t, err)
	assert.Nil(t, rows)
}

func avgNode() string {
	return "select a, avg(b) from t_order group by a"
}

func avgResults() []QueryResult {
	fields := []string{"a", "avg(b)", "AVG_DERIVED_COUNT_0"}
	return []QueryResult{
		MockResult(fields, []interface{}{1, 10, 2}, []interface{}{2, 6, 3}),
		MockResult(fields, []interface{}{1, 20, 2}, []interface{}{3, 9, 1}),
		MockResult(fields, []interface{}{2, nil, 0}),
	}
}

func TestMergeAvg(t *testing.T) {
	want := [][]string{
		{"1", "7.5"},
		{"2", "2"},
		{"3", "9"},
	}

	ctx := mockContext(t, avgNode(), nil)
	assert.Equal(t, planner.MergeStreamGroupBy, ctx.Strategy)
	merged, err := Merge(xbase.NewNullLog(), ctx, avgResults(), nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, merged.ColumnCount())
	assert.Equal(t, "avg(b)", merged.ColumnName(2))
	rows, err := MockRows(merged)
	assert.Nil(t, err)
	assert.Equal(t, want, rows)

	conf := &config.MergeConfig{StreamGroupBy: false}
	ctx = mockContext(t, avgNode(), conf)
	assert.Equal(t, planner.MergeMemoryGroupBy, ctx.Strategy)
	assert.Equal(t, want, mockMerge(t, ctx, conf, avgResults()...))
}

func TestMergeAvgEmptyShard(t *testing.T) {
	ctx := mockContext(t, "select avg(b) from t_order", nil)
	fields := []string{"avg(b)", "AVG_DERIVED_COUNT_0"}
	r1 := MockResult(fields, []interface{}{30, 3})
	r2 := MockResult(fields, []interface{}{nil, 0})
	r3 := MockResult(fields, []interface{}{6, 1})
	assert.Equal(t, [][]string{{"9"}}, mockMerge(t, ctx, nil, r1, r2, r3))

	ctx = mockContext(t, "select avg(b) from t_order", nil)
	r1 = MockResult(fields, []interface{}{nil, 0})
	assert.Equal(t, [][]string{{"NULL"}}, mockMerge(t, ctx, nil, r1))
}

func TestMergeCountDistinct(t *testing.T) {
	ctx := mockContext(t, "select a, count(distinct b) from t_order group by a", nil)

	fields := []string{"a", "count(distinct b)"}
	r1 := MockResult(fields, []interface{}{1, "x"}, []interface{}{1, "y"}, []interface{}{2, "x"})
	r2 := MockResult(fields, []interface{}{1, "X"}, []interface{}{1, "w"}, []interface{}{2, "z"})
	rows := mockMerge(t, ctx, nil, r1, r2)
	assert.Equal(t, [][]string{{"1", "3"}, {"2", "2"}}, rows)
}

func TestMergeGroupByDerived(t *testing.T) {
	ctx := mockContext(t, "select count(*) from t_order group by c", nil)

	fields := []string{"count(*)", "GROUP_BY_DERIVED_0"}
	r1 := MockResult(fields, []interface{}{2, "a"}, []interface{}{1, "b"})
	r2 := MockResult(fields, []interface{}{3, "a"})
	rows := mockMerge(t, ctx, nil, r1, r2)
	assert.Equal(t, [][]string{{"5"}, {"1"}}, rows)
}

func TestMergeOrderByAggregate(t *testing.T) {
	ctx := mockContext(t, "select a, count(*) from t_order group by a order by count(*) desc", nil)
	assert.Equal(t, planner.MergeMemoryGroupBy, ctx.Strategy)

	fields := []string{"a", "count(*)"}
	r1 := MockResult(fields, []interface{}{1, 5}, []interface{}{2, 1})
	r2 := MockResult(fields, []interface{}{2, 10}, []interface{}{3, 2})
	rows := mockMerge(t, ctx, nil, r1, r2)
	assert.Equal(t, [][]string{{"2", "11"}, {"1", "5"}, {"3", "2"}}, rows)
}

func TestMergeOrderByLimit(t *testing.T) {
	ctx := mockContext(t, "select a from t_order order by a limit 1, 2", nil)

	fields := []string{"a"}
	r1 := MockResult(fields, []interface{}{1}, []interface{}{3}, []interface{}{5})
	r2 := MockResult(fields, []interface{}{2}, []interface{}{4})
	rows := mockMerge(t, ctx, nil, r1, r2)
	assert.Equal(t, [][]string{{"2"}, {"3"}}, rows)
}

func TestMergeDistinct(t *testing.T) {
	ctx := mockContext(t, "select distinct a, b from t_order", nil)

	fields := []string{"a", "b"}
	r1 := MockResult(fields, []interface{}{1, "x"}, []interface{}{2, "y"})
	r2 := MockResult(fields, []interface{}{1, "X"}, []interface{}{3, "z"})
	rows := mockMerge(t, ctx, nil, r1, r2)
	assert.Equal(t, [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}}, rows)
}

func TestMergeStreamEqualsMemory(t *testing.T) {
	node := "select a, sum(b), count(*), max(b), min(b) from t_order group by a"
	fields := []string{"a", "sum(b)", "count(*)", "max(b)", "min(b)"}
	results := func() []QueryResult {
		var out []QueryResult
		for shard := 0; shard < 3; shard++ {
			var rows [][]interface{}
			for key := shard; key < 10; key += shard + 1 {
				v := key*10 + shard
				rows = append(rows, []interface{}{key, v, shard + 1, v + shard, v - shard})
			}
			out = append(out, MockResult(fields, rows...))
		}
		return out
	}

	stream := mockMerge(t, mockContext(t, node, nil), nil, results()...)
	conf := &config.MergeConfig{StreamGroupBy: false}
	memory := mockMerge(t, mockContext(t, node, conf), conf, results()...)
	assert.Equal(t, 10, len(stream))
	assert.Equal(t, memory, stream)
	for i, row := range stream {
		assert.Equal(t, fmt.Sprintf("%d", i), row[0])
	}
}

func TestMergeMemoryCap(t *testing.T) {
	node := "select a, count(*) from t_order group by a"
	conf := &config.MergeConfig{MaxMemoryRows: 2}
	ctx := mockContext(t, node, conf)

	fields := []string{"a", "count(*)"}
	r1 := MockResult(fields, []interface{}{1, 1}, []interface{}{2, 1})
	r2 := MockResult(fields, []interface{}{3, 1})
	_, err := Merge(xbase.NewNullLog(), ctx, []QueryResult{r1, r2}, conf)
	assert.Equal(t, ErrTooManyRows, errors.Cause(err))
}

func TestMergeErrors(t *testing.T) {
	// Column count mismatch.
	{
		ctx := mockContext(t, "select a from t_order", nil)
		r1 := MockResult([]string{"a"}, []interface{}{1})
		r2 := MockResult([]string{"a", "b"}, []interface{}{1, 2})
		_, err := Merge(xbase.NewNullLog(), ctx, []QueryResult{r1, r2}, nil)
		assert.Equal(t, "merger.shard.results.column.count[2].mismatch[1]", err.Error())
	}

	// A shard answering a string to a sum.
	{
		ctx := mockContext(t, "select sum(a) from t_order", nil)
		r1 := MockResult([]string{"sum(a)"}, []interface{}{1})
		r2 := MockResult([]string{"sum(a)"}, []interface{}{"x"})
		_, err := Merge(xbase.NewNullLog(), ctx, []QueryResult{r1, r2}, nil)
		assert.Equal(t, datum.ErrIncomparable, errors.Cause(err))
	}
}

func TestMergeClosedShard(t *testing.T) {
	ctx := mockContext(t, "select a from t_order", nil)
	r1 := MockResult([]string{"a"}, []interface{}{1})
	r2 := MockResult([]string{"a"}, []interface{}{2})
	r2.Close()
	rows := mockMerge(t, ctx, nil, r1, r2)
	assert.Equal(t, [][]string{{"1"}}, rows)
}
