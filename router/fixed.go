/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/sharding"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// Fixed is a partition without shard key: a GLOBAL table is copied on
// every segment, a SINGLE table lives on one.
type Fixed struct {
	log  *xlog.Log
	typ  MethodType
	conf *config.TableConfig

	Segments []Segment `json:",omitempty"`
}

// NewGlobal creates the partition of a table copied to all its backends.
func NewGlobal(log *xlog.Log, conf *config.TableConfig) *Fixed {
	return &Fixed{log: log, typ: MethodTypeGlobal, conf: conf}
}

// NewSingle creates the partition of a table kept on one backend.
func NewSingle(log *xlog.Log, conf *config.TableConfig) *Fixed {
	return &Fixed{log: log, typ: MethodTypeSingle, conf: conf}
}

// Build copies the partitions of the config to the segments.
func (f *Fixed) Build() error {
	parts := f.conf.Partitions
	if f.typ == MethodTypeSingle && len(parts) != 1 {
		return errors.Errorf("single.table[%s].must.have.one.partition", f.conf.Name)
	}
	f.Segments = make([]Segment, 0, len(parts))
	for _, part := range parts {
		f.Segments = append(f.Segments, Segment{Table: part.Table, Backend: part.Backend})
	}
	return nil
}

// Lookup returns every segment whatever the value.
func (f *Fixed) Lookup(sharding.RouteValue) ([]int, error) {
	return allIndexes(len(f.Segments)), nil
}

// Type returns GLOBAL or SINGLE.
func (f *Fixed) Type() MethodType {
	return f.typ
}

// GetSegments returns Segments.
func (f *Fixed) GetSegments() []Segment {
	return f.Segments
}
