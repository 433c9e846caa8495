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
)

// Direction type.
type Direction string

const (
	// ASC enum.
	ASC Direction = "ASC"

	// DESC enum.
	DESC Direction = "DESC"
)

// MergeStrategy is how the shard results are stitched together.
type MergeStrategy string

const (
	// MergeIterator drains the shards one after another.
	MergeIterator MergeStrategy = "iterator"

	// MergeOrderBy k-way merges the shards on the order by keys.
	MergeOrderBy MergeStrategy = "orderby"

	// MergeStreamGroupBy groups on the fly over the k-way merge.
	MergeStreamGroupBy MergeStrategy = "stream-groupby"

	// MergeMemoryGroupBy buffers, groups and sorts all the rows.
	MergeMemoryGroupBy MergeStrategy = "memory-groupby"
)

// OrderItem is one group by or order by key.
// Index is the 1-based column of the shard results, Hidden the 1-based
// ordinal among the derived columns appended behind the visible ones.
type OrderItem struct {
	Field         string
	Index         int
	Hidden        int `json:",omitempty"`
	Direction     Direction
	CaseSensitive bool
}

// DerivedUnit is one accumulator fed from a shard result column.
type DerivedUnit struct {
	Type     expression.AggrType
	Index    int
	Hidden   int `json:",omitempty"`
	Distinct bool
}

// AggregateItem is one aggregate column of the statement.
// The merged value is written back to Index, AVG is read as the quotient
// of its SUM and COUNT units.
type AggregateItem struct {
	Field    string
	Type     expression.AggrType
	Distinct bool
	Index    int
	Hidden   int `json:",omitempty"`
	Units    []*DerivedUnit
}

// Limit tuple.
type Limit struct {
	Offset   int
	Rowcount int
}

// SelectContext is the compiled description of a select the merger works on.
type SelectContext struct {
	Strategy   MergeStrategy
	Fields     []string
	Aggregates []*AggregateItem `json:",omitempty"`
	GroupBy    []*OrderItem     `json:",omitempty"`
	OrderBy    []*OrderItem     `json:",omitempty"`
	Limit      *Limit           `json:",omitempty"`

	// Distinct groups on all the visible columns.
	Distinct bool `json:",omitempty"`
	Having   bool `json:",omitempty"`

	// CaseSensitive applies to the string keys of the aggregations.
	CaseSensitive bool `json:",omitempty"`

	// HiddenCount is the number of derived columns trailing the visible ones.
	HiddenCount int `json:",omitempty"`
}

// Visible returns the visible column count of a shard result.
func (c *SelectContext) Visible(columnCount int) int {
	return columnCount - c.HiddenCount
}

// Resolve binds the hidden items to the column count of the shard results.
func (c *SelectContext) Resolve(columnCount int) error {
	visible := c.Visible(columnCount)
	if visible < 1 {
		return errors.Errorf("select.context.columns[%d].less.than.derived[%d]", columnCount, c.HiddenCount)
	}
	bind := func(index *int, hidden int) error {
		if hidden > 0 {
			*index = visible + hidden
		}
		if *index < 1 || *index > columnCount {
			return errors.Errorf("select.context.column.index[%d].out.of.range[%d]", *index, columnCount)
		}
		return nil
	}
	for _, aggr := range c.Aggregates {
		if err := bind(&aggr.Index, aggr.Hidden); err != nil {
			return err
		}
		for _, unit := range aggr.Units {
			if err := bind(&unit.Index, unit.Hidden); err != nil {
				return err
			}
		}
	}
	if c.Distinct {
		c.GroupBy = c.GroupBy[:0]
		for i := 1; i <= visible; i++ {
			c.GroupBy = append(c.GroupBy, &OrderItem{Index: i, Direction: ASC, CaseSensitive: c.CaseSensitive})
		}
	}
	for _, items := range [][]*OrderItem{c.GroupBy, c.OrderBy} {
		for _, item := range items {
			if err := bind(&item.Index, item.Hidden); err != nil {
				return err
			}
		}
	}
	return nil
}

// Decide picks the merge strategy.
func (c *SelectContext) Decide(streamGroupBy bool) MergeStrategy {
	switch {
	case len(c.GroupBy) > 0 || c.Distinct:
		if streamGroupBy && !c.Distinct && c.IsSameGroupByAndOrderBy() {
			c.Strategy = MergeStreamGroupBy
		} else {
			c.Strategy = MergeMemoryGroupBy
		}
	case len(c.Aggregates) > 0:
		c.Strategy = MergeMemoryGroupBy
	case len(c.OrderBy) > 0:
		c.Strategy = MergeOrderBy
	default:
		c.Strategy = MergeIterator
	}
	return c.Strategy
}

// IsSameGroupByAndOrderBy returns true if the order by keys are the group
// by keys in the same sequence, the directions may differ.
func (c *SelectContext) IsSameGroupByAndOrderBy() bool {
	if len(c.GroupBy) == 0 || len(c.GroupBy) != len(c.OrderBy) {
		return false
	}
	for i, g := range c.GroupBy {
		o := c.OrderBy[i]
		if g.Index != o.Index || g.Hidden != o.Hidden {
			return false
		}
	}
	return true
}

// IsAggregateOnly returns true if the statement aggregates without groups.
func (c *SelectContext) IsAggregateOnly() bool {
	return len(c.Aggregates) > 0 && len(c.GroupBy) == 0 && !c.Distinct
}
