/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package sharding

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/xbase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// splitOrExpression breaks up the top-level OR into the branches.
func splitOrExpression(node sqlparser.Expr) []sqlparser.Expr {
	switch node := node.(type) {
	case *sqlparser.OrExpr:
		return append(splitOrExpression(node.Left), splitOrExpression(node.Right)...)
	case *sqlparser.ParenExpr:
		switch node.Expr.(type) {
		case *sqlparser.OrExpr, *sqlparser.ParenExpr:
			return splitOrExpression(node.Expr)
		}
	}
	return []sqlparser.Expr{node}
}

// splitAndExpression breaks up the Expr into AND-separated conditions
// and appends them to filters.
func splitAndExpression(filters []sqlparser.Expr, node sqlparser.Expr) []sqlparser.Expr {
	switch node := node.(type) {
	case *sqlparser.AndExpr:
		filters = splitAndExpression(filters, node.Left)
		return splitAndExpression(filters, node.Right)
	case *sqlparser.ParenExpr:
		if _, ok := node.Expr.(*sqlparser.OrExpr); !ok {
			return splitAndExpression(filters, node.Expr)
		}
	}
	return append(filters, node)
}

func skipParenthesis(node sqlparser.Expr) sqlparser.Expr {
	if paren, ok := node.(*sqlparser.ParenExpr); ok {
		return skipParenthesis(paren.Expr)
	}
	return node
}

var flipOperators = map[string]string{
	sqlparser.EqualStr:         sqlparser.EqualStr,
	sqlparser.NullSafeEqualStr: sqlparser.NullSafeEqualStr,
	sqlparser.LessThanStr:      sqlparser.GreaterThanStr,
	sqlparser.LessEqualStr:     sqlparser.GreaterEqualStr,
	sqlparser.GreaterThanStr:   sqlparser.LessThanStr,
	sqlparser.GreaterEqualStr:  sqlparser.LessEqualStr,
}

// predicate derives the route value of one atomic predicate, nil if the
// predicate does not constrain a sharding column.
func (e *ConditionEngine) predicate(ev *evaluator, tables []tableRef, node sqlparser.Expr) (RouteValue, error) {
	switch node := node.(type) {
	case *sqlparser.ComparisonExpr:
		return e.comparison(ev, tables, node)
	case *sqlparser.RangeCond:
		return e.between(ev, tables, node)
	case *sqlparser.OrExpr:
		return e.convertOrToIn(ev, tables, node)
	case *sqlparser.ParenExpr:
		return e.predicate(ev, tables, skipParenthesis(node))
	}
	return nil, nil
}

func (e *ConditionEngine) comparison(ev *evaluator, tables []tableRef, node *sqlparser.ComparisonExpr) (RouteValue, error) {
	op := strings.ToLower(node.Operator)
	colName, ok := node.Left.(*sqlparser.ColName)
	val := node.Right
	if !ok {
		flipped, canFlip := flipOperators[op]
		if colName, ok = node.Right.(*sqlparser.ColName); !ok || !canFlip {
			return nil, nil
		}
		op, val = flipped, node.Left
	}
	column, ok := e.resolveColumn(tables, colName)
	if !ok {
		return nil, nil
	}

	switch op {
	case sqlparser.EqualStr, sqlparser.NullSafeEqualStr:
		d, idxs, ok, err := ev.value(val)
		if err != nil || !ok {
			return nil, err
		}
		if op == sqlparser.NullSafeEqualStr && datum.CheckNull(d) {
			return nil, nil
		}
		return NewListRouteValue(column, []datum.Datum{d}, idxs)
	case sqlparser.InStr:
		tuple, ok := val.(sqlparser.ValTuple)
		if !ok {
			return nil, nil
		}
		values := make([]datum.Datum, 0, len(tuple))
		var idxs []int
		for _, expr := range tuple {
			d, idx, ok, err := ev.value(expr)
			if err != nil || !ok {
				return nil, err
			}
			values = append(values, d)
			idxs = append(idxs, idx...)
		}
		return NewListRouteValue(column, values, idxs)
	case sqlparser.LessThanStr, sqlparser.LessEqualStr, sqlparser.GreaterThanStr, sqlparser.GreaterEqualStr:
		d, idxs, ok, err := ev.value(val)
		if err != nil || !ok {
			return nil, err
		}
		if datum.CheckNull(d) {
			return &AlwaysFalseRouteValue{Column: column}, nil
		}
		var r Range
		switch op {
		case sqlparser.LessThanStr, sqlparser.LessEqualStr:
			r.Upper, r.UpperInclusive = d, op == sqlparser.LessEqualStr
		default:
			r.Lower, r.LowerInclusive = d, op == sqlparser.GreaterEqualStr
		}
		return NewRangeRouteValue(column, r, idxs)
	}
	return nil, nil
}

func (e *ConditionEngine) between(ev *evaluator, tables []tableRef, node *sqlparser.RangeCond) (RouteValue, error) {
	if strings.ToLower(node.Operator) != sqlparser.BetweenStr {
		return nil, nil
	}
	colName, ok := node.Left.(*sqlparser.ColName)
	if !ok {
		return nil, nil
	}
	column, ok := e.resolveColumn(tables, colName)
	if !ok {
		return nil, nil
	}
	from, fromIdxs, ok, err := ev.value(node.From)
	if err != nil || !ok {
		return nil, err
	}
	to, toIdxs, ok, err := ev.value(node.To)
	if err != nil || !ok {
		return nil, err
	}
	if datum.CheckNull(from) || datum.CheckNull(to) {
		return &AlwaysFalseRouteValue{Column: column}, nil
	}
	r := Range{Lower: from, LowerInclusive: true, Upper: to, UpperInclusive: true}
	return NewRangeRouteValue(column, r, mergeIndexes(fromIdxs, toIdxs))
}

// convertOrToIn folds 'col = a OR col = b OR col IN (c, d)' on one sharding
// column into a list. Any other OR shape does not constrain routing.
func (e *ConditionEngine) convertOrToIn(ev *evaluator, tables []tableRef, node *sqlparser.OrExpr) (RouteValue, error) {
	var column Column
	var values []datum.Datum
	var idxs []int
	for i, leaf := range splitOrExpression(node) {
		cmp, ok := skipParenthesis(leaf).(*sqlparser.ComparisonExpr)
		if !ok {
			return nil, nil
		}
		switch strings.ToLower(cmp.Operator) {
		case sqlparser.EqualStr, sqlparser.InStr:
		default:
			return nil, nil
		}
		v, err := e.comparison(ev, tables, cmp)
		if err != nil || v == nil {
			return nil, err
		}
		if i == 0 {
			column = v.ShardingColumn()
		} else if v.ShardingColumn() != column {
			return nil, nil
		}
		switch v := v.(type) {
		case *ListRouteValue:
			values = append(values, v.Values...)
			idxs = append(idxs, v.ParameterIndexes...)
		case *AlwaysFalseRouteValue:
		default:
			return nil, nil
		}
	}
	return NewListRouteValue(column, values, mergeIndexes(nil, idxs))
}

// evaluator resolves literal values for one statement.
type evaluator struct {
	ctx         context.Context
	params      []interface{}
	timeService TimeService
	now         *time.Time
}

// value returns the datum of a literal, a bound parameter or a now()-style
// function. ok is false when the expression is none of them.
func (ev *evaluator) value(expr sqlparser.Expr) (d datum.Datum, idxs []int, ok bool, err error) {
	switch expr := expr.(type) {
	case *sqlparser.SQLVal:
		if expr.Type == sqlparser.ValArg {
			idx, ok := xbase.ArgIndex(expr)
			if !ok || idx >= len(ev.params) {
				return nil, nil, false, nil
			}
			d, err = datum.ValueToDatum(ev.params[idx])
			if err != nil {
				return nil, nil, false, errors.Wrapf(ErrUnsupportedShardingValue, "sharding.parameter[%d]:%v", idx, err)
			}
			return d, []int{idx}, true, nil
		}
		d, err = sqlValToDatum(expr)
		return d, nil, err == nil, err
	case *sqlparser.NullVal:
		return datum.NewDNull(), nil, true, nil
	case sqlparser.BoolVal:
		if expr {
			return datum.NewDInt(1, false), nil, true, nil
		}
		return datum.NewDInt(0, false), nil, true, nil
	case *sqlparser.FuncExpr:
		if !IsTimeFunction(expr.Name.String()) {
			return nil, nil, false, nil
		}
		if ev.now == nil {
			now, err := ev.timeService.Now(ev.ctx)
			if err != nil {
				return nil, nil, false, err
			}
			ev.now = &now
		}
		return datum.NewDTime(*ev.now), nil, true, nil
	}
	return nil, nil, false, nil
}

func sqlValToDatum(val *sqlparser.SQLVal) (datum.Datum, error) {
	str := string(val.Val)
	switch val.Type {
	case sqlparser.IntVal:
		if ival, err := strconv.ParseInt(str, 10, 64); err == nil {
			return datum.NewDInt(ival, false), nil
		}
		if uval, err := strconv.ParseUint(str, 10, 64); err == nil {
			return datum.NewDInt(int64(uval), true), nil
		}
		dval, err := decimal.NewFromString(str)
		if err != nil {
			return nil, errors.Errorf("sharding.invalid.int.value[%s]", str)
		}
		return datum.NewDDecimal(dval), nil
	case sqlparser.FloatVal:
		if strings.ContainsAny(str, "eE") {
			fval, err := strconv.ParseFloat(str, 64)
			if err != nil {
				return nil, errors.Errorf("sharding.invalid.float.value[%s]", str)
			}
			return datum.NewDFloat(fval), nil
		}
		dval, err := decimal.NewFromString(str)
		if err != nil {
			return nil, errors.Errorf("sharding.invalid.float.value[%s]", str)
		}
		return datum.NewDDecimal(dval), nil
	case sqlparser.HexNum:
		raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(str), "0x"))
		if err != nil {
			return nil, errors.Errorf("sharding.invalid.hex.value[%s]", str)
		}
		return datum.NewDString(string(raw)), nil
	case sqlparser.HexVal:
		raw, err := val.HexDecode()
		if err != nil {
			return nil, errors.Errorf("sharding.invalid.hex.value[%s]", str)
		}
		return datum.NewDString(string(raw)), nil
	}
	return datum.NewDString(str), nil
}
