/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"database/sql"

	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/merger"

	"github.com/pkg/errors"
)

// Rows adapts *sql.Rows to merger.QueryResult.
type Rows struct {
	rows  *sql.Rows
	names []string
	types []string
	raw   []sql.RawBytes
	dest  []interface{}
	valid bool
}

// NewRows creates the Rows.
func NewRows(rows *sql.Rows) (*Rows, error) {
	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	r := &Rows{
		rows:  rows,
		names: make([]string, len(cols)),
		types: make([]string, len(cols)),
		raw:   make([]sql.RawBytes, len(cols)),
		dest:  make([]interface{}, len(cols)),
	}
	for i, col := range cols {
		r.names[i] = col.Name()
		r.types[i] = col.DatabaseTypeName()
		r.dest[i] = &r.raw[i]
	}
	return r, nil
}

// Next implements merger.QueryResult.
func (r *Rows) Next() (bool, error) {
	r.valid = false
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return false, errors.WithStack(err)
		}
		return false, nil
	}
	if err := r.rows.Scan(r.dest...); err != nil {
		return false, errors.WithStack(err)
	}
	r.valid = true
	return true, nil
}

// Value implements merger.QueryResult.
// The raw bytes are copied, the datum outlives the next call of Next.
func (r *Rows) Value(i int) (datum.Datum, error) {
	if !r.valid {
		return nil, errors.New("backend.rows.no.current.row")
	}
	if i < 1 || i > len(r.raw) {
		return nil, errors.Errorf("backend.rows.column[%d].out.of.range[%d]", i, len(r.raw))
	}
	return datum.ParseValue(r.types[i-1], r.raw[i-1])
}

// ColumnCount implements merger.QueryResult.
func (r *Rows) ColumnCount() int {
	return len(r.names)
}

// ColumnName implements merger.QueryResult.
func (r *Rows) ColumnName(i int) string {
	return r.names[i-1]
}

// Close implements merger.QueryResult.
func (r *Rows) Close() error {
	r.valid = false
	return errors.WithStack(r.rows.Close())
}

var _ merger.QueryResult = (*Rows)(nil)
