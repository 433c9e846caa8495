/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"github.com/radondb/shardcore/expression"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	_ Plan = &AggregatePlan{}
)

// AggregatePlan represents the aggregate rewrite of a select.
// AVG(x) is sent as SUM(x) in place plus a derived COUNT(x), a distinct
// aggregate is sent as its raw argument grouped on the shard.
type AggregatePlan struct {
	log  *xlog.Log
	proj *projection

	Aggregates []*AggregateItem `json:"Aggregate(s)"`

	// DistinctArgs are pushed to the shard group by.
	distinctArgs sqlparser.GroupBy

	typ PlanType
}

// NewAggregatePlan used to create AggregatePlan.
func NewAggregatePlan(log *xlog.Log, proj *projection) *AggregatePlan {
	return &AggregatePlan{
		log:  log,
		proj: proj,
		typ:  PlanTypeAggregate,
	}
}

// Build used to build the aggregate items.
func (p *AggregatePlan) Build() error {
	for i, t := range p.proj.tuples {
		if t.aggr == nil {
			continue
		}
		typ := expression.ParseAggrType(t.aggr.Name.String())
		item := &AggregateItem{
			Field:    t.field,
			Type:     typ,
			Distinct: t.aggr.Distinct,
			Index:    i + 1,
		}

		if item.Distinct {
			arg, err := distinctArg(t.aggr)
			if err != nil {
				return err
			}
			// The shard returns the values, the merger folds the distinct ones.
			p.proj.exprs[i] = &sqlparser.AliasedExpr{Expr: arg, As: sqlparser.NewColIdent(t.field)}
			p.distinctArgs = append(p.distinctArgs, arg)
			if typ == expression.AggrTypeAvg {
				item.Units = []*DerivedUnit{
					{Type: expression.AggrTypeSum, Index: item.Index, Distinct: true},
					{Type: expression.AggrTypeCount, Index: item.Index, Distinct: true},
				}
			} else {
				item.Units = []*DerivedUnit{{Type: typ, Index: item.Index, Distinct: true}}
			}
			p.Aggregates = append(p.Aggregates, item)
			continue
		}

		if typ == expression.AggrTypeAvg {
			sum := &sqlparser.FuncExpr{Name: sqlparser.NewColIdent("sum"), Exprs: t.aggr.Exprs}
			count := &sqlparser.FuncExpr{Name: sqlparser.NewColIdent("count"), Exprs: t.aggr.Exprs}
			p.proj.exprs[i] = &sqlparser.AliasedExpr{Expr: sum, As: sqlparser.NewColIdent(t.field)}
			hidden := p.proj.pushHidden(count, avgDerivedCount)
			item.Units = []*DerivedUnit{
				{Type: expression.AggrTypeSum, Index: item.Index},
				{Type: expression.AggrTypeCount, Hidden: hidden},
			}
		} else {
			item.Units = []*DerivedUnit{{Type: typ, Index: item.Index}}
		}
		p.Aggregates = append(p.Aggregates, item)
	}
	return nil
}

// pushOrderAggregate derives an aggregate referenced only by the order by.
func (p *AggregatePlan) pushOrderAggregate(fn *sqlparser.FuncExpr) (int, error) {
	typ := expression.ParseAggrType(fn.Name.String())
	if fn.Distinct || typ == expression.AggrTypeAvg {
		return 0, errors.Errorf("unsupported: orderby[%s].aggregate.must.be.in.select.list", sqlparser.String(fn))
	}
	hidden := p.proj.pushHidden(fn, orderByDerived)
	p.Aggregates = append(p.Aggregates, &AggregateItem{
		Field:  sqlparser.String(fn),
		Type:   typ,
		Hidden: hidden,
		Units:  []*DerivedUnit{{Type: typ, Hidden: hidden}},
	})
	return hidden, nil
}

// HasDistinct returns true if any aggregate is distinct.
func (p *AggregatePlan) HasDistinct() bool {
	return len(p.distinctArgs) > 0
}

// Type returns the type of the plan.
func (p *AggregatePlan) Type() PlanType {
	return p.typ
}

// JSON returns the plan info.
func (p *AggregatePlan) JSON() string {
	return toJSON(p)
}

func distinctArg(fn *sqlparser.FuncExpr) (sqlparser.Expr, error) {
	if len(fn.Exprs) != 1 {
		return nil, errors.Errorf("unsupported: distinct.aggregate[%s].must.have.one.argument", sqlparser.String(fn))
	}
	aliased, ok := fn.Exprs[0].(*sqlparser.AliasedExpr)
	if !ok {
		return nil, errors.Errorf("unsupported: distinct.aggregate[%s].argument.can.not.be.'*'", sqlparser.String(fn))
	}
	return aliased.Expr, nil
}
