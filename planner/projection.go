/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

const (
	avgDerivedCount = "AVG_DERIVED_COUNT"
	groupByDerived  = "GROUP_BY_DERIVED"
	orderByDerived  = "ORDER_BY_DERIVED"
)

// selectTuple is one visible select expression as the client wrote it.
type selectTuple struct {
	expr  sqlparser.SelectExpr
	field string
	alias string
	aggr  *sqlparser.FuncExpr
}

// projection tracks the select list sent to the shards: the visible
// expressions first, then the derived ones.
type projection struct {
	tuples   []selectTuple
	exprs    sqlparser.SelectExprs
	star     bool
	hidden   int
	counters map[string]int
}

func newProjection(exprs sqlparser.SelectExprs) (*projection, error) {
	p := &projection{
		exprs:    make(sqlparser.SelectExprs, 0, len(exprs)),
		counters: make(map[string]int),
	}
	for _, e := range exprs {
		tuple := selectTuple{expr: e}
		switch e := e.(type) {
		case *sqlparser.StarExpr:
			p.star = true
			tuple.field = "*"
		case *sqlparser.AliasedExpr:
			tuple.alias = e.As.String()
			tuple.field = fieldName(e.Expr)
			if !e.As.IsEmpty() {
				tuple.field = tuple.alias
			}
			if fn, ok := e.Expr.(*sqlparser.FuncExpr); ok && fn.IsAggregate() {
				tuple.aggr = fn
			} else if hasAggregate(e.Expr) {
				return nil, errors.Errorf("unsupported: expression.with.aggregate[%s]", sqlparser.String(e.Expr))
			}
		}
		p.tuples = append(p.tuples, tuple)
		p.exprs = append(p.exprs, e)
	}
	if p.star && p.hasAggregate() {
		return nil, errors.New("unsupported: exists.aggregate.and.'*'.select.exprs")
	}
	return p, nil
}

func (p *projection) hasAggregate() bool {
	for _, t := range p.tuples {
		if t.aggr != nil {
			return true
		}
	}
	return false
}

// pushHidden appends a derived expression and returns its hidden ordinal.
func (p *projection) pushHidden(expr sqlparser.Expr, prefix string) int {
	alias := fmt.Sprintf("%s_%d", prefix, p.counters[prefix])
	p.counters[prefix]++
	p.exprs = append(p.exprs, &sqlparser.AliasedExpr{Expr: expr, As: sqlparser.NewColIdent(alias)})
	p.hidden++
	return p.hidden
}

// match returns the 1-based visible position the expression refers to,
// 0 if it must be derived.
func (p *projection) match(expr sqlparser.Expr, clause string) (int, error) {
	if val, ok := expr.(*sqlparser.SQLVal); ok && val.Type == sqlparser.IntVal {
		pos, err := strconv.Atoi(string(val.Val))
		if err != nil {
			return 0, errors.WithStack(err)
		}
		if pos < 1 || (!p.star && pos > len(p.tuples)) {
			return 0, errors.Errorf("unsupported: unknown.column.'%d'.in.'%s'", pos, clause)
		}
		return pos, nil
	}
	if p.star {
		return 0, nil
	}

	col, isCol := expr.(*sqlparser.ColName)
	text := sqlparser.String(expr)
	for i, t := range p.tuples {
		aliased, ok := t.expr.(*sqlparser.AliasedExpr)
		if !ok {
			continue
		}
		if isCol {
			if col.Qualifier.IsEmpty() && t.alias != "" && col.Name.EqualString(t.alias) {
				return i + 1, nil
			}
			if c, ok := aliased.Expr.(*sqlparser.ColName); ok && sameColumn(col, c) {
				return i + 1, nil
			}
			continue
		}
		if strings.EqualFold(text, sqlparser.String(aliased.Expr)) {
			return i + 1, nil
		}
	}
	return 0, nil
}

func sameColumn(a, b *sqlparser.ColName) bool {
	if !a.Name.Equal(b.Name) {
		return false
	}
	return a.Qualifier.IsEmpty() || b.Qualifier.IsEmpty() || strings.EqualFold(a.Qualifier.Name.String(), b.Qualifier.Name.String())
}

func fieldName(expr sqlparser.Expr) string {
	if col, ok := expr.(*sqlparser.ColName); ok {
		return col.Name.String()
	}
	return sqlparser.String(expr)
}

func hasAggregate(expr sqlparser.Expr) bool {
	found := false
	sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		switch node := node.(type) {
		case *sqlparser.Subquery:
			return false, nil
		case *sqlparser.FuncExpr:
			if node.IsAggregate() {
				found = true
				return false, nil
			}
		}
		return true, nil
	}, expr)
	return found
}

func fields(tuples []selectTuple) []string {
	out := make([]string, 0, len(tuples))
	for _, t := range tuples {
		out = append(out, t.field)
	}
	return out
}
