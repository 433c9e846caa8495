/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"strings"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/xbase"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	_ Plan = &SelectPlan{}
)

// SelectPlan represents select plan.
// It compiles the statement sent to every shard and the context the
// merger stitches the shard results with.
type SelectPlan struct {
	log  *xlog.Log
	conf *config.MergeConfig

	// original statement
	node *sqlparser.Select

	// statement sent to the shards
	rewritten *sqlparser.Select

	// database
	database string

	Context  *SelectContext
	children *PlanTree

	// type
	typ PlanType
}

// NewSelectPlan used to create SelectPlan.
func NewSelectPlan(log *xlog.Log, database string, node *sqlparser.Select, conf *config.MergeConfig) *SelectPlan {
	if conf == nil {
		conf = config.DefaultMergeConfig()
	}
	return &SelectPlan{
		log:      log,
		conf:     conf,
		node:     node,
		database: database,
		children: NewPlanTree(),
		typ:      PlanTypeSelect,
	}
}

// Build used to build distributed querys.
func (p *SelectPlan) Build() error {
	node := p.node
	if withoutTable(node.From) {
		return errors.New("unsupported: select.without.table")
	}
	proj, err := newProjection(node.SelectExprs)
	if err != nil {
		return err
	}
	distinct := node.Distinct != ""
	if distinct && proj.hasAggregate() {
		return errors.New("unsupported: distinct.with.aggregate")
	}
	if distinct && proj.star {
		return errors.New("unsupported: distinct.with.'*'.select.exprs")
	}

	aggrPlan := NewAggregatePlan(p.log, proj)
	groupPlan := NewGroupByPlan(p.log, node.GroupBy, proj, p.conf.CaseSensitive)
	orderPlan := NewOrderByPlan(p.log, node.OrderBy, proj, aggrPlan, p.conf.CaseSensitive)
	p.children.Add(aggrPlan)
	p.children.Add(groupPlan)
	p.children.Add(orderPlan)
	if err := p.children.Build(); err != nil {
		return err
	}

	ctx := &SelectContext{
		Fields:        fields(proj.tuples),
		Aggregates:    aggrPlan.Aggregates,
		GroupBy:       groupPlan.GroupBys,
		OrderBy:       orderPlan.OrderBys,
		Distinct:      distinct,
		Having:        node.Having != nil && node.Having.Expr != nil,
		CaseSensitive: p.conf.CaseSensitive,
		HiddenCount:   proj.hidden,
	}

	// The shards sort on the group keys so that the groups can be streamed.
	orderBy := node.OrderBy
	if len(ctx.GroupBy) > 0 && len(ctx.OrderBy) == 0 {
		orderBy = make(sqlparser.OrderBy, 0, len(node.GroupBy))
		for i, g := range ctx.GroupBy {
			ctx.OrderBy = append(ctx.OrderBy, &OrderItem{
				Field:         g.Field,
				Index:         g.Index,
				Hidden:        g.Hidden,
				Direction:     ASC,
				CaseSensitive: g.CaseSensitive,
			})
			orderBy = append(orderBy, &sqlparser.Order{Expr: node.GroupBy[i], Direction: sqlparser.AscScr})
		}
	}
	strategy := ctx.Decide(p.conf.StreamGroupBy)

	pushdown := false
	switch strategy {
	case MergeIterator, MergeOrderBy:
		pushdown = true
	case MergeStreamGroupBy:
		pushdown = !aggrPlan.HasDistinct()
	}
	limitPlan := NewLimitPlan(p.log, node.Limit, pushdown)
	if err := limitPlan.Build(); err != nil {
		return err
	}
	p.children.Add(limitPlan)
	if node.Limit != nil {
		ctx.Limit = &Limit{Offset: limitPlan.Offset, Rowcount: limitPlan.Limit}
	}

	rewritten := *node
	rewritten.SelectExprs = proj.exprs
	rewritten.GroupBy = append(append(sqlparser.GroupBy{}, node.GroupBy...), aggrPlan.distinctArgs...)
	rewritten.OrderBy = orderBy
	rewritten.Limit = limitPlan.Rewritten()
	p.rewritten = &rewritten
	p.Context = ctx
	return nil
}

// withoutTable reports a missing FROM, which the parser spells as 'dual'.
func withoutTable(from sqlparser.TableExprs) bool {
	if len(from) != 1 {
		return len(from) == 0
	}
	expr, ok := from[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return false
	}
	name, ok := expr.Expr.(sqlparser.TableName)
	return ok && name.Qualifier.IsEmpty() && strings.EqualFold(name.Name.String(), "dual")
}

// Query returns the statement for the shard, tables maps the logic table
// names to the segment ones.
func (p *SelectPlan) Query(tables map[string]string, params []interface{}) string {
	buf := sqlparser.NewTrackedBuffer(xbase.RewriteFormatter(tables, params))
	buf.Myprintf("%v", p.rewritten)
	return buf.String()
}

// OriginQuery returns the statement as the client wrote it, used when only
// one shard is hit and nothing needs to be merged.
func (p *SelectPlan) OriginQuery(tables map[string]string, params []interface{}) string {
	buf := sqlparser.NewTrackedBuffer(xbase.RewriteFormatter(tables, params))
	buf.Myprintf("%v", p.node)
	return buf.String()
}

// Node returns the original statement.
func (p *SelectPlan) Node() *sqlparser.Select {
	return p.node
}

// Children returns the sub plans.
func (p *SelectPlan) Children() *PlanTree {
	return p.children
}

// Type returns the type of the plan.
func (p *SelectPlan) Type() PlanType {
	return p.typ
}

// JSON returns the plan info.
func (p *SelectPlan) JSON() string {
	type explain struct {
		RawQuery string         `json:",omitempty"`
		Rewrite  string         `json:",omitempty"`
		Context  *SelectContext `json:",omitempty"`
	}
	exp := &explain{RawQuery: sqlparser.String(p.node), Context: p.Context}
	if p.rewritten != nil {
		exp.Rewrite = sqlparser.String(p.rewritten)
	}
	return toJSON(exp)
}
