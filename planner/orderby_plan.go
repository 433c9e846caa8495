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

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	_ Plan = &GroupByPlan{}
	_ Plan = &OrderByPlan{}
)

// GroupByPlan represents group-by plan.
type GroupByPlan struct {
	log           *xlog.Log
	node          sqlparser.GroupBy
	proj          *projection
	caseSensitive bool

	GroupBys []*OrderItem `json:"GroupBy(s)"`
	typ      PlanType
}

// NewGroupByPlan used to create GroupByPlan.
func NewGroupByPlan(log *xlog.Log, node sqlparser.GroupBy, proj *projection, caseSensitive bool) *GroupByPlan {
	return &GroupByPlan{
		log:           log,
		node:          node,
		proj:          proj,
		caseSensitive: caseSensitive,
		typ:           PlanTypeGroupBy,
	}
}

// Build resolves every group by key to a shard result column.
func (p *GroupByPlan) Build() error {
	for _, e := range p.node {
		item := &OrderItem{
			Field:         fieldName(e),
			Direction:     ASC,
			CaseSensitive: p.caseSensitive,
		}
		idx, err := p.proj.match(e, "group statement")
		if err != nil {
			return err
		}
		switch {
		case idx > 0:
			if p.proj.tuples != nil && idx <= len(p.proj.tuples) && p.proj.tuples[idx-1].aggr != nil {
				return errors.Errorf("unsupported: can't.group.on.'%s'", p.proj.tuples[idx-1].field)
			}
			item.Index = idx
		case hasAggregate(e):
			return errors.Errorf("unsupported: can't.group.on.'%s'", sqlparser.String(e))
		default:
			item.Hidden = p.proj.pushHidden(e, groupByDerived)
		}
		p.GroupBys = append(p.GroupBys, item)
	}
	return nil
}

// Type returns the type of the plan.
func (p *GroupByPlan) Type() PlanType {
	return p.typ
}

// JSON returns the plan info.
func (p *GroupByPlan) JSON() string {
	return toJSON(p)
}

// OrderByPlan represents order-by plan.
type OrderByPlan struct {
	log           *xlog.Log
	node          sqlparser.OrderBy
	proj          *projection
	aggrs         *AggregatePlan
	caseSensitive bool

	OrderBys []*OrderItem `json:"OrderBy(s)"`
	typ      PlanType
}

// NewOrderByPlan used to create OrderByPlan.
func NewOrderByPlan(log *xlog.Log, node sqlparser.OrderBy, proj *projection, aggrs *AggregatePlan, caseSensitive bool) *OrderByPlan {
	return &OrderByPlan{
		log:           log,
		node:          node,
		proj:          proj,
		aggrs:         aggrs,
		caseSensitive: caseSensitive,
		typ:           PlanTypeOrderby,
	}
}

// Build resolves every order by key to a shard result column.
func (p *OrderByPlan) Build() error {
	for _, o := range p.node {
		item := &OrderItem{
			Field:         fieldName(o.Expr),
			Direction:     ASC,
			CaseSensitive: p.caseSensitive,
		}
		if strings.EqualFold(o.Direction, sqlparser.DescScr) {
			item.Direction = DESC
		}
		idx, err := p.proj.match(o.Expr, "order clause")
		if err != nil {
			return err
		}
		switch {
		case idx > 0:
			item.Index = idx
		case hasAggregate(o.Expr):
			fn, ok := o.Expr.(*sqlparser.FuncExpr)
			if !ok {
				return errors.Errorf("unsupported: orderby[%s].expression.with.aggregate", sqlparser.String(o.Expr))
			}
			if item.Hidden, err = p.aggrs.pushOrderAggregate(fn); err != nil {
				return err
			}
		default:
			item.Hidden = p.proj.pushHidden(o.Expr, orderByDerived)
		}
		p.OrderBys = append(p.OrderBys, item)
	}
	return nil
}

// Type returns the type of the plan.
func (p *OrderByPlan) Type() PlanType {
	return p.typ
}

// JSON returns the plan info.
func (p *OrderByPlan) JSON() string {
	return toJSON(p)
}
