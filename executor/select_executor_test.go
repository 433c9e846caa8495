/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package executor

import (
	"context"
	"testing"

	"github.com/radondb/shardcore/fakedb"
	"github.com/radondb/shardcore/merger"
	"github.com/radondb/shardcore/xbase"

	"github.com/stretchr/testify/assert"
)

func TestSelectExecutorSingleSegment(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fakedbs.AddQuery("select id, name from t_order_0 where id = 1", fakedb.Result1)

	node := parse(t, "select id, name from t_order where id = 1")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, [][]string{{"11", "1nice name"}, {"12", "NULL"}}, MockRows(res))
	assert.Equal(t, 1, fakedbs.Called())
}

func TestSelectExecutorSum(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fields := []string{"sum(amount)"}
	fakedbs.AddQuery("select sum(amount) from t_order_0 where id in (1, 2)", merger.MockResult(fields, []interface{}{10}))
	fakedbs.AddQuery("select sum(amount) from t_order_1 where id in (1, 2)", merger.MockResult(fields, []interface{}{20}))

	node := parse(t, "select sum(amount) from t_order where id in (1, 2)")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, fields, res.Fields)
	assert.Equal(t, [][]string{{"30"}}, MockRows(res))
	assert.Equal(t, 2, fakedbs.Called())
}

func TestSelectExecutorAlwaysFalse(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()

	node := parse(t, "select id, name from t_order where id = 1 and id = 2")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"id", "name"}, res.Fields)
	assert.Equal(t, 0, len(res.Rows))
	assert.Equal(t, 0, fakedbs.Called())
}

func TestSelectExecutorEmptyAggregate(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()

	// No list value is above 1000.
	{
		node := parse(t, "select count(*) from t_order where id > 1000")
		res, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.Nil(t, err)
		assert.Equal(t, []string{"count(*)"}, res.Fields)
		assert.Equal(t, [][]string{{"0"}}, MockRows(res))
		assert.Equal(t, 0, fakedbs.Called())
	}

	// Shards answering no rows.
	{
		fields := []string{"count(*)", "max(amount)"}
		fakedbs.AddQuery("select count(*), max(amount) from t_order_0 where id in (1, 2)", merger.MockResult(fields))
		fakedbs.AddQuery("select count(*), max(amount) from t_order_1 where id in (1, 2)", merger.MockResult(fields))
		node := parse(t, "select count(*), max(amount) from t_order where id in (1, 2)")
		res, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.Nil(t, err)
		assert.Equal(t, [][]string{{"0", "NULL"}}, MockRows(res))
	}
}

func TestSelectExecutorGroupBy(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fields := []string{"a", "count(*)"}
	fakedbs.AddQuery("select a, count(*) from t_order_0 where id in (1, 2) group by a order by a asc",
		merger.MockResult(fields, []interface{}{1, 2}, []interface{}{2, 1}))
	fakedbs.AddQuery("select a, count(*) from t_order_1 where id in (1, 2) group by a order by a asc",
		merger.MockResult(fields, []interface{}{1, 3}, []interface{}{3, 1}))

	node := parse(t, "select a, count(*) from t_order where id in (1, 2) group by a")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, fields, res.Fields)
	assert.Equal(t, [][]string{{"1", "5"}, {"2", "1"}, {"3", "1"}}, MockRows(res))
}

func TestSelectExecutorOrderBy(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fields := []string{"id", "name"}
	fakedbs.AddQuery("select id, name from t_order_0 order by id desc",
		merger.MockResult(fields, []interface{}{12, "b"}, []interface{}{11, "a"}))
	fakedbs.AddQuery("select id, name from t_order_1 order by id desc",
		merger.MockResult(fields, []interface{}{22, "d"}, []interface{}{21, "c"}))
	fakedbs.AddQuery("select id, name from t_order_2 order by id desc", merger.MockResult(fields))

	node := parse(t, "select id, name from t_order order by id desc")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	want := [][]string{{"22", "d"}, {"21", "c"}, {"12", "b"}, {"11", "a"}}
	assert.Equal(t, want, MockRows(res))
	assert.Equal(t, 3, fakedbs.Called())
}

func TestSelectExecutorHashBroadcast(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fakedbs.AddQueryPattern("select count\\(\\*\\) from t_user_\\d{4}", merger.MockResult([]string{"count(*)"}, []interface{}{1}))

	// 2 partitions on each of the 3 backends.
	node := parse(t, "select count(*) from t_user")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, [][]string{{"6"}}, MockRows(res))
	assert.Equal(t, 6, fakedbs.Called())
}

func TestSelectExecutorGlobal(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fakedbs.AddQuery("select * from t_global", fakedb.Result2)

	node := parse(t, "select * from t_global")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res.Rows))
	assert.Equal(t, 1, fakedbs.Called())
}

func TestSelectExecutorErrors(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()

	// Having over several shards.
	{
		node := parse(t, "select a, count(*) from t_order group by a having count(*) > 1")
		_, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.Equal(t, "unsupported: having.clause.across.multiple.shards", err.Error())
	}

	// Having on one shard goes as it is.
	{
		fakedbs.AddQuery("select a, count(*) from t_order_2 where id = 3 group by a having count(*) > 1", fakedb.Result3)
		node := parse(t, "select a, count(*) from t_order where id = 3 group by a having count(*) > 1")
		res, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.Nil(t, err)
		assert.Equal(t, 0, len(res.Rows))
	}

	// Backend error.
	{
		node := parse(t, "select x from t_order where id = 2")
		_, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.Equal(t, "fakedb.query[select x from t_order_1 where id = 2].not.found", err.Error())
	}
}
