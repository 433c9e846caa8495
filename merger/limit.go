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

	"github.com/pkg/errors"
)

var (
	_ QueryResult = &LimitDecorator{}
	_ QueryResult = &ProjectDecorator{}
)

// LimitDecorator skips offset rows and stops after rowcount rows.
type LimitDecorator struct {
	input    QueryResult
	offset   int
	rowcount int
	skipped  bool
	served   int
}

// NewLimitDecorator creates the LimitDecorator.
func NewLimitDecorator(input QueryResult, offset, rowcount int) *LimitDecorator {
	return &LimitDecorator{
		input:    input,
		offset:   offset,
		rowcount: rowcount,
	}
}

// Next implements QueryResult.
func (l *LimitDecorator) Next() (bool, error) {
	if !l.skipped {
		l.skipped = true
		for i := 0; i < l.offset; i++ {
			ok, err := l.input.Next()
			if err != nil || !ok {
				return false, err
			}
		}
	}
	if l.served >= l.rowcount {
		return false, nil
	}
	ok, err := l.input.Next()
	if err != nil || !ok {
		return false, err
	}
	l.served++
	return true, nil
}

// Value implements QueryResult.
func (l *LimitDecorator) Value(i int) (datum.Datum, error) {
	return l.input.Value(i)
}

// ColumnCount implements QueryResult.
func (l *LimitDecorator) ColumnCount() int {
	return l.input.ColumnCount()
}

// ColumnName implements QueryResult.
func (l *LimitDecorator) ColumnName(i int) string {
	return l.input.ColumnName(i)
}

// Close implements QueryResult.
func (l *LimitDecorator) Close() error {
	return l.input.Close()
}

// ProjectDecorator hides the derived columns trailing the visible ones.
type ProjectDecorator struct {
	input   QueryResult
	visible int
}

// NewProjectDecorator creates the ProjectDecorator.
func NewProjectDecorator(input QueryResult, visible int) *ProjectDecorator {
	return &ProjectDecorator{
		input:   input,
		visible: visible,
	}
}

// Next implements QueryResult.
func (p *ProjectDecorator) Next() (bool, error) {
	return p.input.Next()
}

// Value implements QueryResult.
func (p *ProjectDecorator) Value(i int) (datum.Datum, error) {
	if i > p.visible {
		return nil, errors.Errorf("merger.result.column[%d].out.of.range[%d]", i, p.visible)
	}
	return p.input.Value(i)
}

// ColumnCount implements QueryResult.
func (p *ProjectDecorator) ColumnCount() int {
	return p.visible
}

// ColumnName implements QueryResult.
func (p *ProjectDecorator) ColumnName(i int) string {
	return p.input.ColumnName(i)
}

// Close implements QueryResult.
func (p *ProjectDecorator) Close() error {
	return p.input.Close()
}
