/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/planner"
)

var (
	_ QueryResult = &GroupByStream{}
)

// GroupByStream groups the rows of an OrderByStream sorted on the group
// by keys, holding one group at a time.
type GroupByStream struct {
	rowResult
	ctx   *planner.SelectContext
	input *OrderByStream

	// pending is the first row of the next group.
	pending MemoryRow
	started bool
}

// NewGroupByStream creates the GroupByStream.
func NewGroupByStream(ctx *planner.SelectContext, results []QueryResult) *GroupByStream {
	input := NewOrderByStream(results, ctx.OrderBy)
	return &GroupByStream{
		rowResult: rowResult{fields: input.fields},
		ctx:       ctx,
		input:     input,
	}
}

func (s *GroupByStream) pull() (MemoryRow, error) {
	ok, err := s.input.Next()
	if err != nil || !ok {
		return nil, err
	}
	return s.input.Row(), nil
}

// Next implements QueryResult.
func (s *GroupByStream) Next() (bool, error) {
	var err error
	if !s.started {
		s.started = true
		if s.pending, err = s.pull(); err != nil {
			return false, err
		}
	}
	s.current = nil
	if s.pending == nil {
		return false, nil
	}

	aggr, err := newGroupAggregator(s.ctx)
	if err != nil {
		return false, err
	}
	row := append(MemoryRow(nil), s.pending...)
	key := groupKey(row, s.ctx.GroupBy)
	next := s.pending
	for {
		if err := aggr.fold(next); err != nil {
			return false, err
		}
		if next, err = s.pull(); err != nil {
			return false, err
		}
		if next == nil || groupKey(next, s.ctx.GroupBy) != key {
			break
		}
	}
	s.pending = next
	if err := aggr.write(row); err != nil {
		return false, err
	}
	s.current = row
	return true, nil
}

// Value implements QueryResult.
func (s *GroupByStream) Value(i int) (datum.Datum, error) {
	return s.value(i)
}

// ColumnCount implements QueryResult.
func (s *GroupByStream) ColumnCount() int {
	return len(s.fields)
}

// ColumnName implements QueryResult.
func (s *GroupByStream) ColumnName(i int) string {
	return s.fields[i-1]
}

// Close implements QueryResult.
func (s *GroupByStream) Close() error {
	return s.input.Close()
}
