/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"sort"

	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/planner"

	"github.com/pkg/errors"
)

var (
	_ QueryResult = &GroupByMemory{}
)

type memoryGroup struct {
	row  MemoryRow
	aggr *groupAggregator
}

// GroupByMemory drains all the shard results, groups them, writes the
// aggregates back and sorts the groups on the order by keys.
type GroupByMemory struct {
	rowResult
	ctx     *planner.SelectContext
	results []QueryResult
	maxRows int
	rows    []MemoryRow
	idx     int
}

// NewGroupByMemory creates the GroupByMemory, maxRows caps the groups held,
// 0 means unlimited. The fields name the columns of the shard results.
func NewGroupByMemory(ctx *planner.SelectContext, results []QueryResult, fields []string, maxRows int) (*GroupByMemory, error) {
	m := &GroupByMemory{
		rowResult: rowResult{fields: fields},
		ctx:       ctx,
		results:   results,
		maxRows:   maxRows,
	}
	if err := m.init(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *GroupByMemory) init() error {
	groups := make(map[string]*memoryGroup)
	var order []*memoryGroup
	for _, r := range m.results {
		for {
			ok, err := next(r)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			row, err := NewMemoryRow(r)
			if err != nil {
				return err
			}
			key := groupKey(row, m.ctx.GroupBy)
			g, ok := groups[key]
			if !ok {
				if m.maxRows > 0 && len(order) >= m.maxRows {
					return errors.Wrapf(ErrTooManyRows, "merger.memory.groupby.rows.exceed[%d]", m.maxRows)
				}
				aggr, err := newGroupAggregator(m.ctx)
				if err != nil {
					return err
				}
				g = &memoryGroup{row: row, aggr: aggr}
				groups[key] = g
				order = append(order, g)
			}
			if err := g.aggr.fold(row); err != nil {
				return err
			}
		}
	}

	// A bare aggregate answers one row even if no row matched.
	if len(order) == 0 && m.ctx.IsAggregateOnly() {
		aggr, err := newGroupAggregator(m.ctx)
		if err != nil {
			return err
		}
		order = append(order, &memoryGroup{row: NewNullRow(len(m.fields)), aggr: aggr})
	}

	m.rows = make([]MemoryRow, 0, len(order))
	for _, g := range order {
		if err := g.aggr.write(g.row); err != nil {
			return err
		}
		m.rows = append(m.rows, g.row)
	}
	return m.sort()
}

func (m *GroupByMemory) sort() error {
	if len(m.ctx.OrderBy) == 0 {
		return nil
	}
	var err error
	sort.SliceStable(m.rows, func(i, j int) bool {
		if err != nil {
			return false
		}
		cmp, cerr := compareRows(m.rows[i], m.rows[j], m.ctx.OrderBy)
		if cerr != nil {
			err = cerr
			return false
		}
		return cmp < 0
	})
	return err
}

// Next implements QueryResult.
func (m *GroupByMemory) Next() (bool, error) {
	if m.idx >= len(m.rows) {
		m.current = nil
		return false, nil
	}
	m.current = m.rows[m.idx]
	m.idx++
	return true, nil
}

// Value implements QueryResult.
func (m *GroupByMemory) Value(i int) (datum.Datum, error) {
	return m.value(i)
}

// ColumnCount implements QueryResult.
func (m *GroupByMemory) ColumnCount() int {
	return len(m.fields)
}

// ColumnName implements QueryResult.
func (m *GroupByMemory) ColumnName(i int) string {
	return m.fields[i-1]
}

// Close implements QueryResult.
func (m *GroupByMemory) Close() error {
	m.rows = nil
	return closeAll(m.results)
}
