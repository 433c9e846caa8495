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

	"github.com/radondb/shardcore/monitor"
	"github.com/radondb/shardcore/router"
	"github.com/radondb/shardcore/sharding"
	"github.com/radondb/shardcore/xcontext"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

var (
	_ Executor = &InsertExecutor{}
)

// InsertExecutor represents insert executor
type InsertExecutor struct {
	base
	node *sqlparser.Insert
}

// NewInsertExecutor creates new insert executor.
func NewInsertExecutor(e *Engine, database string, node *sqlparser.Insert, params []interface{}) *InsertExecutor {
	return &InsertExecutor{
		base: base{
			log:      e.log,
			engine:   e,
			database: database,
			params:   params,
		},
		node: node,
	}
}

type segmentRows struct {
	seg  router.Segment
	rows sqlparser.Values
}

// Build implements Executor.
// Every row goes to the segment of its sharding value, the rows of one
// segment are sent as one insert.
func (executor *InsertExecutor) Build(ctx context.Context) (*xcontext.RequestContext, error) {
	e := executor.engine
	node := executor.node
	if e.autoinc != nil {
		if err := e.autoinc.Process(executor.database, node); err != nil {
			return nil, err
		}
	}

	values, ok := node.Rows.(sqlparser.Values)
	if !ok {
		return nil, errors.Errorf("unsupported: insert.rows.type[%T]", node.Rows)
	}

	ri, err := e.route(ctx, executor.database, node.Table, node, executor.params)
	if err != nil {
		return nil, err
	}
	executor.ri = ri

	var groups []*segmentRows
	if len(ri.conds) == 0 {
		// No sharding column, global and single tables take all the rows.
		segments, err := e.segments(ri, nil)
		if err != nil {
			return nil, err
		}
		for _, seg := range segments {
			groups = append(groups, &segmentRows{seg: seg, rows: values})
		}
	} else {
		index := make(map[string]*segmentRows)
		for i, cond := range ri.conds {
			segments, err := e.segments(ri, sharding.ShardingConditions{cond})
			if err != nil {
				return nil, err
			}
			if len(segments) != 1 {
				return nil, errors.Errorf("executor.insert.table[%s].row[%d].routes.to[%d].segments", ri.table, i, len(segments))
			}
			seg := segments[0]
			key := seg.Backend + "." + seg.Table
			g, ok := index[key]
			if !ok {
				g = &segmentRows{seg: seg}
				index[key] = g
				groups = append(groups, g)
			}
			g.rows = append(g.rows, values[i])
		}
	}

	req := xcontext.NewRequestContext()
	req.RawQuery = sqlparser.String(node)
	for _, g := range groups {
		ins := *node
		ins.Rows = g.rows
		req.Querys = append(req.Querys, queryTuple(g.seg, rewrite(&ins, tables(ri, g.seg), executor.params)))
		ri.segments = append(ri.segments, g.seg)
	}
	monitor.RouteTotalCounterInc(len(groups), false)
	executor.req = req
	return req, nil
}

// Execute implements Executor.
func (executor *InsertExecutor) Execute(ctx context.Context, res *Result) error {
	return execDML(ctx, &executor.base, res)
}

// execDML sends the dmls built and sums the rows affected.
func execDML(ctx context.Context, b *base, res *Result) error {
	if len(b.req.Querys) == 0 {
		return nil
	}
	rs, err := b.engine.scatter.Exec(ctx, b.req)
	if err != nil {
		return err
	}
	res.RowsAffected = rs.RowsAffected
	res.InsertID = rs.InsertID
	return nil
}
