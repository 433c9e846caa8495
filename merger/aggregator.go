/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"github.com/radondb/shardcore/expression"
	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/planner"

	"github.com/pkg/errors"
)

// groupAggregator holds the accumulators of one group.
type groupAggregator struct {
	items []*planner.AggregateItem
	units [][]*expression.Aggregation
}

func newGroupAggregator(ctx *planner.SelectContext) (*groupAggregator, error) {
	g := &groupAggregator{
		items: ctx.Aggregates,
		units: make([][]*expression.Aggregation, len(ctx.Aggregates)),
	}
	for i, item := range ctx.Aggregates {
		if len(item.Units) == 0 {
			return nil, errors.Errorf("merger.aggregate[%s].has.no.units", item.Field)
		}
		for _, unit := range item.Units {
			aggr, err := expression.NewAggregation(unit.Type, unit.Distinct, ctx.CaseSensitive)
			if err != nil {
				return nil, err
			}
			g.units[i] = append(g.units[i], aggr)
		}
	}
	return g, nil
}

// fold feeds one shard row to every accumulator.
func (g *groupAggregator) fold(row MemoryRow) error {
	for i, item := range g.items {
		for j, unit := range item.Units {
			if err := g.units[i][j].Merge([]datum.Datum{row.Value(unit.Index)}); err != nil {
				return errors.Wrapf(err, "merger.aggregate[%s]", item.Field)
			}
		}
	}
	return nil
}

// write stores the results of the accumulators to the row.
func (g *groupAggregator) write(row MemoryRow) error {
	for i, item := range g.items {
		units := g.units[i]
		var v datum.Datum
		if item.Type == expression.AggrTypeAvg {
			if len(units) != 2 {
				return errors.Errorf("merger.aggregate[%s].avg.needs.sum.and.count", item.Field)
			}
			var err error
			if v, err = expression.Avg(units[0].Result(), units[1].Result()); err != nil {
				return errors.Wrapf(err, "merger.aggregate[%s]", item.Field)
			}
		} else {
			v = units[0].Result()
		}
		row.Set(item.Index, v)
	}
	return nil
}
