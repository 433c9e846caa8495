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
	"github.com/radondb/shardcore/xcontext"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

var (
	_ Executor = &DeleteExecutor{}
)

// DeleteExecutor represents delete executor
type DeleteExecutor struct {
	base
	node *sqlparser.Delete
}

// NewDeleteExecutor creates the new delete executor.
func NewDeleteExecutor(e *Engine, database string, node *sqlparser.Delete, params []interface{}) *DeleteExecutor {
	return &DeleteExecutor{
		base: base{
			log:      e.log,
			engine:   e,
			database: database,
			params:   params,
		},
		node: node,
	}
}

// Build implements Executor.
func (executor *DeleteExecutor) Build(ctx context.Context) (*xcontext.RequestContext, error) {
	e := executor.engine
	node := executor.node

	ri, err := e.route(ctx, executor.database, node.Table, node, executor.params)
	if err != nil {
		return nil, err
	}
	executor.ri = ri
	segments, err := e.segments(ri, ri.conds)
	if err != nil {
		return nil, err
	}
	ri.segments = segments
	if node.Limit != nil && len(segments) > 1 {
		return nil, errors.New("unsupported: limit.across.multiple.shards")
	}
	monitor.RouteTotalCounterInc(len(segments), ri.conds.IsBroadcast())

	req := xcontext.NewRequestContext()
	req.RawQuery = sqlparser.String(node)
	for _, seg := range segments {
		req.Querys = append(req.Querys, queryTuple(seg, rewrite(node, tables(ri, seg), executor.params)))
	}
	executor.req = req
	return req, nil
}

// Execute implements Executor.
func (executor *DeleteExecutor) Execute(ctx context.Context, res *Result) error {
	return execDML(ctx, &executor.base, res)
}
