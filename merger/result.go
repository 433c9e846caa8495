/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

// Package merger stitches the row cursors of the shards into one cursor
// with the semantics of the statement run on a single database.
package merger

import (
	"github.com/radondb/shardcore/expression/datum"

	"github.com/pkg/errors"
)

var (
	// ErrResultClosed is returned by a cursor closed before its end,
	// the merger reads it as the end of the stream.
	ErrResultClosed = errors.New("merger.result.closed")

	// ErrTooManyRows is returned when a memory merge exceeds its cap.
	ErrTooManyRows = errors.New("merger.too.many.rows")
)

// QueryResult is a forward only row cursor, columns are 1-based.
type QueryResult interface {
	Next() (bool, error)
	Value(i int) (datum.Datum, error)
	ColumnCount() int
	ColumnName(i int) string
	Close() error
}

// next advances the cursor, a closed cursor is exhausted.
func next(r QueryResult) (bool, error) {
	ok, err := r.Next()
	if err != nil {
		if errors.Cause(err) == ErrResultClosed {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// MemoryRow is a row copied out of a cursor, it outlives the cursor.
type MemoryRow []datum.Datum

// NewMemoryRow copies the current row of the cursor.
func NewMemoryRow(r QueryResult) (MemoryRow, error) {
	row := make(MemoryRow, r.ColumnCount())
	for i := range row {
		v, err := r.Value(i + 1)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

// NewNullRow returns a row of n NULLs.
func NewNullRow(n int) MemoryRow {
	row := make(MemoryRow, n)
	for i := range row {
		row[i] = datum.NewDNull()
	}
	return row
}

// Value returns the cell of the 1-based column.
func (row MemoryRow) Value(i int) datum.Datum {
	return row[i-1]
}

// Set sets the cell of the 1-based column.
func (row MemoryRow) Set(i int, d datum.Datum) {
	row[i-1] = d
}

// ResultSet is a QueryResult over buffered rows.
type ResultSet struct {
	Fields []string
	Rows   []MemoryRow

	cursor int
	closed bool
}

// NewResultSet creates the ResultSet.
func NewResultSet(fields []string, rows []MemoryRow) *ResultSet {
	return &ResultSet{
		Fields: fields,
		Rows:   rows,
	}
}

// Next implements QueryResult.
func (rs *ResultSet) Next() (bool, error) {
	if rs.closed {
		return false, ErrResultClosed
	}
	if rs.cursor >= len(rs.Rows) {
		return false, nil
	}
	rs.cursor++
	return true, nil
}

// Value implements QueryResult.
func (rs *ResultSet) Value(i int) (datum.Datum, error) {
	if rs.cursor == 0 || rs.cursor > len(rs.Rows) {
		return nil, errors.New("merger.result.no.current.row")
	}
	row := rs.Rows[rs.cursor-1]
	if i < 1 || i > len(row) {
		return nil, errors.Errorf("merger.result.column[%d].out.of.range[%d]", i, len(row))
	}
	return row.Value(i), nil
}

// ColumnCount implements QueryResult.
func (rs *ResultSet) ColumnCount() int {
	return len(rs.Fields)
}

// ColumnName implements QueryResult.
func (rs *ResultSet) ColumnName(i int) string {
	return rs.Fields[i-1]
}

// Close implements QueryResult.
func (rs *ResultSet) Close() error {
	rs.closed = true
	return nil
}

// ReadAll drains the cursor into a ResultSet and closes it.
func ReadAll(r QueryResult) (*ResultSet, error) {
	defer r.Close()
	rs := NewResultSet(columnNames(r), nil)
	for {
		ok, err := next(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return rs, nil
		}
		row, err := NewMemoryRow(r)
		if err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, row)
	}
}

// rowResult serves the current row of a merged stream.
type rowResult struct {
	fields  []string
	current MemoryRow
}

func (r *rowResult) value(i int) (datum.Datum, error) {
	if r.current == nil {
		return nil, errors.New("merger.result.no.current.row")
	}
	if i < 1 || i > len(r.current) {
		return nil, errors.Errorf("merger.result.column[%d].out.of.range[%d]", i, len(r.current))
	}
	return r.current.Value(i), nil
}

func closeAll(results []QueryResult) error {
	var first error
	for _, r := range results {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func columnNames(r QueryResult) []string {
	names := make([]string, r.ColumnCount())
	for i := range names {
		names[i] = r.ColumnName(i + 1)
	}
	return names
}
