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

var (
	_ QueryResult = &IteratorStream{}
)

// IteratorStream serves the shard results one after another.
type IteratorStream struct {
	results []QueryResult
	idx     int
}

// NewIteratorStream creates the IteratorStream, results must not be empty.
func NewIteratorStream(results []QueryResult) *IteratorStream {
	return &IteratorStream{
		results: results,
	}
}

// Next implements QueryResult.
func (s *IteratorStream) Next() (bool, error) {
	for s.idx < len(s.results) {
		ok, err := next(s.results[s.idx])
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		s.idx++
	}
	return false, nil
}

// Value implements QueryResult.
func (s *IteratorStream) Value(i int) (datum.Datum, error) {
	if s.idx >= len(s.results) {
		return nil, ErrResultClosed
	}
	return s.results[s.idx].Value(i)
}

// ColumnCount implements QueryResult.
func (s *IteratorStream) ColumnCount() int {
	return s.results[0].ColumnCount()
}

// ColumnName implements QueryResult.
func (s *IteratorStream) ColumnName(i int) string {
	return s.results[0].ColumnName(i)
}

// Close implements QueryResult.
func (s *IteratorStream) Close() error {
	return closeAll(s.results)
}
