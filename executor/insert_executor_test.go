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

	"github.com/radondb/shardcore/xbase"

	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

func TestInsertExecutorSplit(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fakedbs.AddExec("insert into t_order_0(id, name) values (1, 'a'), (1, 'c')", 2, 100)
	fakedbs.AddExec("insert into t_order_1(id, name) values (2, 'b')", 1, 101)

	node := parse(t, "insert into t_order(id, name) values (1, 'a'), (2, 'b'), (1, 'c')")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), res.RowsAffected)
	assert.Equal(t, uint64(101), res.InsertID)
	assert.Equal(t, 2, fakedbs.Called())
}

func TestInsertExecutorParams(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fakedbs.AddExec("insert into t_order_2(id, name) values (3, 'z')", 1, 0)

	node := parse(t, "insert into t_order(id, name) values (?, ?)")
	res, err := e.Execute(context.Background(), MockDatabase, node, []interface{}{3, "z"})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), res.RowsAffected)
}

func TestInsertExecutorGlobal(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fakedbs.AddExec("insert into t_global(a) values (1)", 1, 0)

	// Every backend holds a copy.
	node := parse(t, "insert into t_global(a) values (1)")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), res.RowsAffected)
	assert.Equal(t, 3, fakedbs.GetQueryCalledNum("insert into t_global(a) values (1)"))
}

func TestInsertExecutorAutoIncrement(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()
	fakedbs.AddExecPattern("insert into t_single\\(name, id\\) values \\('x', \\d+\\), \\('y', \\d+\\)", 2)

	node := parse(t, "insert into t_single(name) values ('x'), ('y')")
	res, err := e.Execute(context.Background(), MockDatabase, node, nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), res.RowsAffected)

	ins := node.(*sqlparser.Insert)
	assert.Equal(t, "(name, id)", sqlparser.String(ins.Columns))
	assert.Equal(t, 2, len(ins.Rows.(sqlparser.Values)[1]))
}

func TestInsertExecutorErrors(t *testing.T) {
	e, fakedbs, cleanup := MockEngine(xbase.NewNullLog())
	defer cleanup()

	// No sharding column.
	{
		node := parse(t, "insert into t_order(name) values ('x')")
		_, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.Equal(t, "sharding.insert.table[t_order].missing.sharding.column[id]", err.Error())
	}

	// No partition holds the value.
	{
		node := parse(t, "insert into t_order(id, name) values (4, 'x')")
		_, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.NotNil(t, err)
	}

	// Null sharding value.
	{
		node := parse(t, "insert into t_order(id, name) values (null, 'x')")
		_, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.NotNil(t, err)
	}

	// Rows from a select.
	{
		node := parse(t, "insert into t_order(id, name) select id, name from t_user")
		_, err := e.Execute(context.Background(), MockDatabase, node, nil)
		assert.NotNil(t, err)
	}
	assert.Equal(t, 0, fakedbs.Called())
}
