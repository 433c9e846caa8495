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
	"encoding/json"
	"strings"
	"time"

	"github.com/radondb/shardcore/backend"
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/merger"
	"github.com/radondb/shardcore/monitor"
	"github.com/radondb/shardcore/plugins/autoincrement"
	"github.com/radondb/shardcore/router"
	"github.com/radondb/shardcore/sharding"
	"github.com/radondb/shardcore/xbase"
	"github.com/radondb/shardcore/xcontext"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// Executor interface.
type Executor interface {
	// Build routes the statement and computes the shard querys.
	Build(ctx context.Context) (*xcontext.RequestContext, error)

	// Execute runs the querys built and fills the result.
	Execute(ctx context.Context, res *Result) error
}

// Result is the answer of one statement.
type Result struct {
	Fields       []string
	Rows         []merger.MemoryRow
	RowsAffected uint64
	InsertID     uint64
}

// Engine executes the statements of the logic schema over the shards.
type Engine struct {
	log        *xlog.Log
	proxyConf  *config.ProxyConfig
	mergeConf  *config.MergeConfig
	router     *router.Router
	scatter    *backend.Scatter
	conditions *sharding.ConditionEngine
	autoinc    autoincrement.Handler
}

// NewEngine creates the engine.
func NewEngine(log *xlog.Log, conf *config.Config, router *router.Router, scatter *backend.Scatter, autoinc autoincrement.Handler, timeService sharding.TimeService) *Engine {
	proxyConf, mergeConf := config.DefaultProxyConfig(), config.DefaultMergeConfig()
	if conf != nil {
		if conf.Proxy != nil {
			proxyConf = conf.Proxy
		}
		if conf.Merge != nil {
			mergeConf = conf.Merge
		}
	}
	return &Engine{
		log:        log,
		proxyConf:  proxyConf,
		mergeConf:  mergeConf,
		router:     router,
		scatter:    scatter,
		conditions: sharding.NewConditionEngine(log, router, timeService),
		autoinc:    autoinc,
	}
}

func (e *Engine) executor(database string, stmt sqlparser.Statement, params []interface{}) (Executor, string, error) {
	switch node := stmt.(type) {
	case *sqlparser.Select:
		return NewSelectExecutor(e, database, node, params), "select", nil
	case *sqlparser.Insert:
		return NewInsertExecutor(e, database, node, params), "insert", nil
	case *sqlparser.Update:
		return NewUpdateExecutor(e, database, node, params), "update", nil
	case *sqlparser.Delete:
		return NewDeleteExecutor(e, database, node, params), "delete", nil
	}
	return nil, "", errors.Errorf("unsupported: statement.type[%T]", stmt)
}

// Execute runs the statement with the bound parameters.
func (e *Engine) Execute(ctx context.Context, database string, stmt sqlparser.Statement, params []interface{}) (*Result, error) {
	log := e.log
	executor, command, err := e.executor(database, stmt, params)
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	log.Debug("executor.stmt[%s].database[%s].query[%s].params%v", id, database, sqlparser.String(stmt), params)
	if e.proxyConf.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(e.proxyConf.QueryTimeout)*time.Millisecond)
		defer cancel()
	}

	res := &Result{}
	if _, err = executor.Build(ctx); err == nil {
		err = executor.Execute(ctx, res)
	}
	if err != nil {
		log.Error("executor.stmt[%s].query[%s].error:%+v", id, sqlparser.String(stmt), err)
		monitor.QueryTotalCounterInc(command, "Error")
		return nil, err
	}
	monitor.QueryTotalCounterInc(command, "OK")
	log.Debug("executor.stmt[%s].rows[%d].affected[%d]", id, len(res.Rows), res.RowsAffected)
	return res, nil
}

// explain is the routing info of a statement.
type explain struct {
	Conditions []string              `json:"conditions"`
	Mode       string                `json:"mode"`
	Backends   []string              `json:"backends"`
	Querys     []xcontext.QueryTuple `json:"querys"`
	Plan       json.RawMessage       `json:"plan,omitempty"`
}

// Explain returns the conditions and the shard querys of the statement as JSON.
func (e *Engine) Explain(ctx context.Context, database string, stmt sqlparser.Statement, params []interface{}) (string, error) {
	executor, _, err := e.executor(database, stmt, params)
	if err != nil {
		return "", err
	}
	req, err := executor.Build(ctx)
	if err != nil {
		return "", err
	}

	exp := &explain{Mode: req.Mode.String(), Backends: req.Querys.Backends(), Querys: req.Querys}
	if r, ok := executor.(interface{ route() *routeInfo }); ok {
		exp.Conditions = r.route().conds.Strings()
	}
	if s, ok := executor.(*SelectExecutor); ok {
		exp.Plan = json.RawMessage(s.plan.JSON())
	}
	bout, err := json.MarshalIndent(exp, "", "\t")
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(bout), nil
}

// routeInfo is the outcome of the routing of one statement.
type routeInfo struct {
	database string
	table    string
	typ      router.MethodType
	conds    sharding.ShardingConditions
	segments []router.Segment
}

// route computes the sharding conditions of the statement and the segments they reach.
func (e *Engine) route(ctx context.Context, database string, table sqlparser.TableName, stmt sqlparser.Statement, params []interface{}) (*routeInfo, error) {
	db := database
	if !table.Qualifier.IsEmpty() {
		db = table.Qualifier.String()
	}
	typ, err := e.router.PartitionType(db, table.Name.String())
	if err != nil {
		return nil, err
	}
	conds, err := e.conditions.CreateShardingConditions(ctx, database, stmt, params)
	if err != nil {
		return nil, err
	}
	return &routeInfo{database: db, table: table.Name.String(), typ: typ, conds: conds}, nil
}

// segments routes the conditions.
func (e *Engine) segments(ri *routeInfo, conds sharding.ShardingConditions) ([]router.Segment, error) {
	segments, err := e.router.Route(ri.database, ri.table, conds)
	if err != nil {
		return nil, err
	}
	e.log.Debug("executor.route.table[%s.%s].conditions%v.segments[%d]", ri.database, ri.table, conds.Strings(), len(segments))
	return segments, nil
}

// tables maps the logic table to the one of the segment.
func tables(ri *routeInfo, seg router.Segment) map[string]string {
	return map[string]string{strings.ToLower(ri.table): seg.Table}
}

// rewrite renders the node for the segment with the parameters inlined.
func rewrite(node sqlparser.SQLNode, tables map[string]string, params []interface{}) string {
	buf := sqlparser.NewTrackedBuffer(xbase.RewriteFormatter(tables, params))
	buf.Myprintf("%v", node)
	return buf.String()
}

func queryTuple(seg router.Segment, query string) xcontext.QueryTuple {
	r := seg.ListValue
	if seg.Range != nil {
		r = seg.Range.String()
	}
	return xcontext.QueryTuple{Query: query, Backend: seg.Backend, Range: r}
}
