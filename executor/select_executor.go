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

	"github.com/radondb/shardcore/merger"
	"github.com/radondb/shardcore/monitor"
	"github.com/radondb/shardcore/planner"
	"github.com/radondb/shardcore/router"
	"github.com/radondb/shardcore/xcontext"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	_ Executor = &SelectExecutor{}
)

// base holds what every executor carries.
type base struct {
	log      *xlog.Log
	engine   *Engine
	database string
	params   []interface{}
	ri       *routeInfo
	req      *xcontext.RequestContext
}

func (b *base) route() *routeInfo {
	return b.ri
}

// SelectExecutor represents select executor
type SelectExecutor struct {
	base
	node *sqlparser.Select
	plan *planner.SelectPlan
}

// NewSelectExecutor creates the new select executor.
func NewSelectExecutor(e *Engine, database string, node *sqlparser.Select, params []interface{}) *SelectExecutor {
	return &SelectExecutor{
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
// One segment gets the statement as written, several get the rewritten
// one whose results the merger stitches.
func (executor *SelectExecutor) Build(ctx context.Context) (*xcontext.RequestContext, error) {
	e := executor.engine
	node := executor.node
	table, err := singleTable(node.From)
	if err != nil {
		return nil, err
	}

	plan := planner.NewSelectPlan(executor.log, executor.database, node, e.mergeConf)
	if err := plan.Build(); err != nil {
		return nil, err
	}
	executor.plan = plan

	ri, err := e.route(ctx, executor.database, table, node, executor.params)
	if err != nil {
		return nil, err
	}
	segments, err := e.segments(ri, ri.conds)
	if err != nil {
		return nil, err
	}
	// Every segment of a global table holds all the rows.
	if ri.typ == router.MethodTypeGlobal && len(segments) > 1 {
		segments = segments[:1]
	}
	ri.segments = segments
	executor.ri = ri
	monitor.RouteTotalCounterInc(len(segments), ri.conds.IsBroadcast())

	req := xcontext.NewRequestContext()
	req.RawQuery = sqlparser.String(node)
	switch len(segments) {
	case 0:
	case 1:
		seg := segments[0]
		req.Querys = append(req.Querys, queryTuple(seg, plan.OriginQuery(tables(ri, seg), executor.params)))
	default:
		if node.Having != nil {
			return nil, errors.New("unsupported: having.clause.across.multiple.shards")
		}
		for _, seg := range segments {
			req.Querys = append(req.Querys, queryTuple(seg, plan.Query(tables(ri, seg), executor.params)))
		}
	}
	executor.req = req
	return req, nil
}

// singleTable returns the only table of the FROM clause, joins are not routed.
func singleTable(from sqlparser.TableExprs) (sqlparser.TableName, error) {
	if len(from) == 1 {
		if expr, ok := from[0].(*sqlparser.AliasedTableExpr); ok {
			if table, ok := expr.Expr.(sqlparser.TableName); ok {
				return table, nil
			}
		}
	}
	return sqlparser.TableName{}, errors.New("unsupported: select.from.must.be.one.table")
}

// Execute implements Executor.
func (executor *SelectExecutor) Execute(ctx context.Context, res *Result) error {
	log := executor.log
	e := executor.engine
	req := executor.req
	selectCtx := executor.plan.Context

	var merged merger.QueryResult
	switch len(req.Querys) {
	case 0:
		// Nothing is routed, the statement still answers like an empty table.
		m, err := merger.Merge(log, selectCtx, nil, e.mergeConf)
		if err != nil {
			return err
		}
		merged = m
	case 1:
		rs, err := e.scatter.Query(ctx, req)
		if err != nil {
			return err
		}
		merged = rs.Results[0]
	default:
		rs, err := e.scatter.Query(ctx, req)
		if err != nil {
			return err
		}
		m, err := merger.Merge(log, selectCtx, rs.Results, e.mergeConf)
		if err != nil {
			return err
		}
		monitor.MergeTotalCounterInc(string(selectCtx.Strategy))
		merged = m
	}

	rs, err := merger.ReadAll(merged)
	if err != nil {
		return err
	}
	res.Fields = rs.Fields
	res.Rows = rs.Rows
	return nil
}
