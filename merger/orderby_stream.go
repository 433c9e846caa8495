/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"container/heap"

	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/planner"
)

var (
	_ QueryResult = &OrderByStream{}
)

type orderCursor struct {
	idx    int
	result QueryResult
	row    MemoryRow
}

// cursorHeap is a min-heap of the shard cursors on their current rows.
type cursorHeap struct {
	items   []*orderCursor
	orderBy []*planner.OrderItem
	err     error
}

func (h *cursorHeap) Len() int { return len(h.items) }

func (h *cursorHeap) Less(i, j int) bool {
	if h.err != nil {
		return false
	}
	a, b := h.items[i], h.items[j]
	cmp, err := compareRows(a.row, b.row, h.orderBy)
	if err != nil {
		h.err = err
		return false
	}
	if cmp == 0 {
		return a.idx < b.idx
	}
	return cmp < 0
}

func (h *cursorHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *cursorHeap) Push(x interface{}) { h.items = append(h.items, x.(*orderCursor)) }

func (h *cursorHeap) Pop() interface{} {
	n := len(h.items)
	c := h.items[n-1]
	h.items = h.items[:n-1]
	return c
}

// OrderByStream k-way merges the shard results, each sorted on the order
// by keys, into one sorted stream. Ties keep the shard order.
type OrderByStream struct {
	rowResult
	results []QueryResult
	heap    *cursorHeap
	top     *orderCursor
	started bool
}

// NewOrderByStream creates the OrderByStream.
func NewOrderByStream(results []QueryResult, orderBy []*planner.OrderItem) *OrderByStream {
	return &OrderByStream{
		rowResult: rowResult{fields: columnNames(results[0])},
		results:   results,
		heap:      &cursorHeap{orderBy: orderBy},
	}
}

// advance moves the cursor one row and puts it back to the heap.
func (s *OrderByStream) advance(c *orderCursor) error {
	ok, err := next(c.result)
	if err != nil || !ok {
		return err
	}
	if c.row, err = NewMemoryRow(c.result); err != nil {
		return err
	}
	heap.Push(s.heap, c)
	return s.heap.err
}

// Next implements QueryResult.
func (s *OrderByStream) Next() (bool, error) {
	if !s.started {
		s.started = true
		for i, r := range s.results {
			if err := s.advance(&orderCursor{idx: i, result: r}); err != nil {
				return false, err
			}
		}
	} else if s.top != nil {
		if err := s.advance(s.top); err != nil {
			return false, err
		}
	}

	s.top, s.current = nil, nil
	if s.heap.Len() == 0 {
		return false, nil
	}
	s.top = heap.Pop(s.heap).(*orderCursor)
	if s.heap.err != nil {
		return false, s.heap.err
	}
	s.current = s.top.row
	return true, nil
}

// Row returns the current row.
func (s *OrderByStream) Row() MemoryRow {
	return s.current
}

// Value implements QueryResult.
func (s *OrderByStream) Value(i int) (datum.Datum, error) {
	return s.value(i)
}

// ColumnCount implements QueryResult.
func (s *OrderByStream) ColumnCount() int {
	return len(s.fields)
}

// ColumnName implements QueryResult.
func (s *OrderByStream) ColumnName(i int) string {
	return s.fields[i-1]
}

// Close implements QueryResult.
func (s *OrderByStream) Close() error {
	return closeAll(s.results)
}
