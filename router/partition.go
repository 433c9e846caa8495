/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"github.com/radondb/shardcore/sharding"
)

// MethodType is the shard type of a table, as written in the config.
type MethodType string

// The partition methods.
const (
	MethodTypeHash   MethodType = "HASH"
	MethodTypeGlobal MethodType = "GLOBAL"
	MethodTypeSingle MethodType = "SINGLE"
	MethodTypeList   MethodType = "LIST"
)

// KeyRange is the slot range of a hash segment.
type KeyRange interface {
	String() string
	Less(KeyRange) bool
}

// Segment is one physical table of a logic table.
type Segment struct {
	Table   string `json:",omitempty"`
	Backend string `json:",omitempty"`

	// hash only
	Range KeyRange `json:",omitempty"`
	// list only
	ListValue string `json:",omitempty"`
}

// Partition maps the route values of a table to its segments.
type Partition interface {
	Build() error
	Type() MethodType

	// Lookup returns the indexes of the segments the route value may
	// reach, in ascending order.
	Lookup(v sharding.RouteValue) ([]int, error)
	GetSegments() []Segment
}

// allIndexes returns 0..n-1.
func allIndexes(n int) []int {
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	return idxs
}
