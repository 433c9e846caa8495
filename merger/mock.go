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
)

// MockResult creates a ResultSet from go values, it panics on a value
// which has no datum.
func MockResult(fields []string, rows ...[]interface{}) *ResultSet {
	rs := NewResultSet(fields, nil)
	for _, r := range rows {
		row := make(MemoryRow, len(r))
		for i, v := range r {
			d, err := datum.ValueToDatum(v)
			if err != nil {
				panic(err)
			}
			row[i] = d
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs
}

// MockRows drains the cursor into rows of strings, NULL is "NULL".
func MockRows(r QueryResult) ([][]string, error) {
	var rows [][]string
	for {
		ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		row := make([]string, r.ColumnCount())
		for i := range row {
			v, err := r.Value(i + 1)
			if err != nil {
				return nil, err
			}
			if datum.CheckNull(v) {
				row[i] = "NULL"
			} else {
				row[i] = v.ValStr()
			}
		}
		rows = append(rows, row)
	}
}
