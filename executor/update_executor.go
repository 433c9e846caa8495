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
	_ Executor = &UpdateExecutor{}
)

// UpdateExecutor represents update executor
type UpdateExecutor struct {
	base
	node *sqlparser.Update
}

// NewUpdateExecutor creates the new update executor.
func NewUpdateExecutor(e *Engine, database string, node *sqlparser.Update, params []interface{}) *UpdateExecutor {
	return &UpdateExecutor{
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
// The shard key may be set only when the row stays in its segment.
func (executor *UpdateExecutor) Build(ctx context.Context) (*xcontext.RequestContext, error) {
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

	shardKey, err := e.router.ShardKey(ri.database, ri.table)
	if err != nil {
		return nil, err
	}
	if shardKey != "" && len(segments) > 1 {
		for _, expr := range node.Exprs {
			if expr.Name.Name.EqualString(shardKey) {
				return nil, errors.Errorf("unsupported: update.shard.key[%s].across.segments", shardKey)
			}
		}
	}
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
func (executor *UpdateExecutor) Execute(ctx context.Context, res *Result) error {
	return execDML(ctx, &executor.base, res)
}
