/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package sharding

import (
	"sort"
	"strings"
)

// ShardingCondition maps each sharding column of one AND-group, or of one
// inserted row, to its merged route value.
type ShardingCondition struct {
	RouteValues map[Column]RouteValue
}

// NewShardingCondition creates the empty condition.
func NewShardingCondition() *ShardingCondition {
	return &ShardingCondition{
		RouteValues: make(map[Column]RouteValue),
	}
}

// Add merges the value with the one already held for the column.
func (c *ShardingCondition) Add(v RouteValue) error {
	col := v.ShardingColumn()
	if old, ok := c.RouteValues[col]; ok {
		merged, err := MergeRouteValues(old, v)
		if err != nil {
			return err
		}
		v = merged
	}
	c.RouteValues[col] = v
	return nil
}

// Get returns the route value of the column.
func (c *ShardingCondition) Get(col Column) (RouteValue, bool) {
	v, ok := c.RouteValues[col]
	return v, ok
}

// IsEmpty returns true if no sharding column is constrained.
func (c *ShardingCondition) IsEmpty() bool {
	return len(c.RouteValues) == 0
}

// IsAlwaysFalse returns true if any column can never match.
func (c *ShardingCondition) IsAlwaysFalse() bool {
	for _, v := range c.RouteValues {
		if _, ok := v.(*AlwaysFalseRouteValue); ok {
			return true
		}
	}
	return false
}

// Columns returns the constrained columns in order.
func (c *ShardingCondition) Columns() []Column {
	cols := make([]Column, 0, len(c.RouteValues))
	for col := range c.RouteValues {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool {
		return cols[i].String() < cols[j].String()
	})
	return cols
}

// String returns the values joined by 'and'.
func (c *ShardingCondition) String() string {
	var parts []string
	for _, col := range c.Columns() {
		parts = append(parts, c.RouteValues[col].String())
	}
	return strings.Join(parts, " and ")
}

// ShardingConditions is the OR-level union of the conditions.
// No condition means the statement is broadcast to every shard.
type ShardingConditions []*ShardingCondition

// IsBroadcast returns true if there is no condition.
func (cs ShardingConditions) IsBroadcast() bool {
	return len(cs) == 0
}

// IsAlwaysFalse returns true if every condition can never match.
func (cs ShardingConditions) IsAlwaysFalse() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.IsAlwaysFalse() {
			return false
		}
	}
	return true
}

// Strings returns the conditions.
func (cs ShardingConditions) Strings() []string {
	res := make([]string, 0, len(cs))
	for _, c := range cs {
		res = append(res, c.String())
	}
	return res
}

func alwaysFalseConditions(col Column) ShardingConditions {
	cond := NewShardingCondition()
	cond.RouteValues[col] = &AlwaysFalseRouteValue{Column: col}
	return ShardingConditions{cond}
}
