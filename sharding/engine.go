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
	"strings"

	"github.com/radondb/shardcore/expression/datum"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// ConditionEngine turns the WHERE/SET predicates and the INSERT rows of a
// statement into sharding conditions.
type ConditionEngine struct {
	log         *xlog.Log
	rule        ShardingRule
	timeService TimeService
}

// NewConditionEngine creates the engine, a nil time service means the
// local clock.
func NewConditionEngine(log *xlog.Log, rule ShardingRule, timeService TimeService) *ConditionEngine {
	if timeService == nil {
		timeService = SystemTimeService{}
	}
	return &ConditionEngine{
		log:         log,
		rule:        rule,
		timeService: timeService,
	}
}

// tableRef is a table visible to the predicates.
type tableRef struct {
	database string
	name     string
	alias    string
}

func tableRefs(database string, from sqlparser.TableExprs) []tableRef {
	refs := make([]tableRef, 0, len(from))
	for _, expr := range from {
		refs = appendTableRefs(refs, database, expr)
	}
	return refs
}

func appendTableRefs(refs []tableRef, database string, expr sqlparser.TableExpr) []tableRef {
	switch expr := expr.(type) {
	case *sqlparser.AliasedTableExpr:
		if name, ok := expr.Expr.(sqlparser.TableName); ok {
			refs = append(refs, tableRef{database: qualifiedDatabase(database, name), name: name.Name.String(), alias: expr.As.String()})
		}
	case *sqlparser.JoinTableExpr:
		refs = appendTableRefs(refs, database, expr.LeftExpr)
		refs = appendTableRefs(refs, database, expr.RightExpr)
	case *sqlparser.ParenTableExpr:
		for _, e := range expr.Exprs {
			refs = appendTableRefs(refs, database, e)
		}
	}
	return refs
}

func singleTableRef(database string, table sqlparser.TableName) []tableRef {
	return []tableRef{{database: qualifiedDatabase(database, table), name: table.Name.String()}}
}

func qualifiedDatabase(database string, table sqlparser.TableName) string {
	if !table.Qualifier.IsEmpty() {
		return table.Qualifier.String()
	}
	return database
}

func whereExpr(where *sqlparser.Where) sqlparser.Expr {
	if where == nil {
		return nil
	}
	return where.Expr
}

// CreateShardingConditions returns the conditions of the statement.
// An empty result means broadcast, a result where every condition
// is always-false means no shard at all.
func (e *ConditionEngine) CreateShardingConditions(ctx context.Context, database string, stmt sqlparser.Statement, params []interface{}) (ShardingConditions, error) {
	ev := &evaluator{ctx: ctx, params: params, timeService: e.timeService}

	var conds ShardingConditions
	var err error
	switch stmt := stmt.(type) {
	case *sqlparser.Select:
		conds, err = e.selectConditions(ev, database, stmt)
	case *sqlparser.Delete:
		conds, err = e.whereConditions(ev, database, singleTableRef(database, stmt.Table), whereExpr(stmt.Where))
	case *sqlparser.Update:
		conds, err = e.updateConditions(ev, database, stmt)
	case *sqlparser.Insert:
		conds, err = e.insertConditions(ev, database, stmt)
	default:
		return nil, errors.Errorf("sharding.unsupported.statement[%T]", stmt)
	}
	if err != nil {
		e.log.Error("sharding.create.conditions.error:%+v", err)
		return nil, err
	}
	e.log.Debug("sharding.conditions%v", conds.Strings())
	return conds, nil
}

func (e *ConditionEngine) selectConditions(ev *evaluator, database string, sel *sqlparser.Select) (ShardingConditions, error) {
	return e.whereConditions(ev, database, tableRefs(database, sel.From), whereExpr(sel.Where))
}

// whereConditions builds one condition per top-level OR branch. A branch
// without any sharding predicate makes the whole statement broadcast.
// The subqueries that are AND conjuncts of a routed branch add their own
// conditions next to it, an always-false or broadcast subquery adds nothing.
func (e *ConditionEngine) whereConditions(ev *evaluator, database string, tables []tableRef, where sqlparser.Expr) (ShardingConditions, error) {
	if where == nil {
		return nil, nil
	}

	var res ShardingConditions
	var falseColumn Column
	for _, group := range splitOrExpression(where) {
		cond := NewShardingCondition()
		var subs []*sqlparser.Select
		for _, pred := range splitAndExpression(nil, group) {
			subs = append(subs, conjunctSubqueries(pred)...)
			v, err := e.predicate(ev, tables, pred)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			if err := cond.Add(v); err != nil {
				return nil, err
			}
		}
		// One unconstrained branch means every shard.
		if cond.IsEmpty() {
			return nil, nil
		}
		if cond.IsAlwaysFalse() {
			falseColumn = cond.Columns()[0]
			continue
		}
		res = append(res, cond)

		for _, sub := range subs {
			subConds, err := e.selectConditions(ev, database, sub)
			if err != nil {
				return nil, err
			}
			if subConds.IsBroadcast() || subConds.IsAlwaysFalse() {
				continue
			}
			res = append(res, subConds...)
		}
	}
	if len(res) == 0 {
		return alwaysFalseConditions(falseColumn), nil
	}
	return res, nil
}

// conjunctSubqueries returns the subqueries the predicate compares against,
// such as 'id in (select ...)' or 'exists (select ...)'.
func conjunctSubqueries(pred sqlparser.Expr) []*sqlparser.Select {
	var subs []*sqlparser.Select
	add := func(expr sqlparser.Expr) {
		if sub, ok := expr.(*sqlparser.Subquery); ok && sub != nil {
			if sel, ok := sub.Select.(*sqlparser.Select); ok {
				subs = append(subs, sel)
			}
		}
	}
	switch pred := skipParenthesis(pred).(type) {
	case *sqlparser.ComparisonExpr:
		add(pred.Left)
		add(pred.Right)
	case *sqlparser.ExistsExpr:
		add(pred.Subquery)
	}
	return subs
}

// updateConditions routes by the WHERE and, when the SET moves the sharding
// column, by the new value too. The new value must be a literal or a parameter.
func (e *ConditionEngine) updateConditions(ev *evaluator, database string, stmt *sqlparser.Update) (ShardingConditions, error) {
	tables := singleTableRef(database, stmt.Table)
	setCond := NewShardingCondition()
	for _, expr := range stmt.Exprs {
		column, ok := e.resolveColumn(tables, expr.Name)
		if !ok {
			continue
		}
		d, idxs, ok, err := ev.value(expr.Expr)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedShardingValue, "sharding.update.column[%s].value[%s]", column, sqlparser.String(expr.Expr))
		}
		if datum.CheckNull(d) {
			return nil, errors.Wrapf(ErrNullShardingValue, "sharding.update.column[%s]", column)
		}
		v, err := NewListRouteValue(column, []datum.Datum{d}, idxs)
		if err != nil {
			return nil, err
		}
		if err := setCond.Add(v); err != nil {
			return nil, err
		}
	}

	conds, err := e.whereConditions(ev, database, tables, whereExpr(stmt.Where))
	if err != nil {
		return nil, err
	}
	if conds.IsBroadcast() || conds.IsAlwaysFalse() || setCond.IsEmpty() {
		return conds, nil
	}
	return append(conds, setCond), nil
}

func (e *ConditionEngine) insertConditions(ev *evaluator, database string, stmt *sqlparser.Insert) (ShardingConditions, error) {
	db := qualifiedDatabase(database, stmt.Table)
	table := stmt.Table.Name.String()
	shardCols := e.rule.ShardingColumns(db, table)
	if len(shardCols) == 0 {
		return nil, nil
	}
	if len(stmt.Columns) == 0 {
		return nil, errors.Errorf("sharding.insert.table[%s].must.specify.the.column.list", table)
	}
	rows, ok := stmt.Rows.(sqlparser.Values)
	if !ok {
		return nil, errors.Errorf("sharding.insert.table[%s].rows.can.not.be.subquery[%T]", table, stmt.Rows)
	}

	positions := make([]int, len(shardCols))
	for i, shardCol := range shardCols {
		positions[i] = stmt.Columns.FindColumn(sqlparser.NewColIdent(shardCol))
		if positions[i] < 0 {
			return nil, errors.Errorf("sharding.insert.table[%s].missing.sharding.column[%s]", table, shardCol)
		}
	}

	res := make(ShardingConditions, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(stmt.Columns) {
			return nil, errors.Errorf("sharding.insert.table[%s].row[%d].column.count[%d].does.not.match.value.count[%d]", table, i, len(stmt.Columns), len(row))
		}
		cond := NewShardingCondition()
		for k, pos := range positions {
			column := NewColumn(shardCols[k], table)
			d, idxs, ok, err := ev.value(row[pos])
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errors.Wrapf(ErrUnsupportedShardingValue, "sharding.insert.column[%s].row[%d].value[%s]", column, i, sqlparser.String(row[pos]))
			}
			if datum.CheckNull(d) {
				return nil, errors.Wrapf(ErrNullShardingValue, "sharding.insert.column[%s].row[%d]", column, i)
			}
			v, err := NewListRouteValue(column, []datum.Datum{d}, idxs)
			if err != nil {
				return nil, err
			}
			if err := cond.Add(v); err != nil {
				return nil, err
			}
		}
		res = append(res, cond)
	}
	return res, nil
}

// resolveColumn returns the sharding column the name refers to.
// An unqualified name goes to the first table sharded by it.
func (e *ConditionEngine) resolveColumn(tables []tableRef, col *sqlparser.ColName) (Column, bool) {
	qualifier := col.Qualifier.Name.String()
	name := col.Name.String()
	for _, t := range tables {
		if qualifier != "" {
			visible := t.name
			if t.alias != "" {
				visible = t.alias
			}
			if !strings.EqualFold(visible, qualifier) {
				continue
			}
		}
		if isShardingColumn(e.rule, t.database, t.name, name) {
			return NewColumn(name, t.name), true
		}
		if qualifier != "" {
			break
		}
	}
	return Column{}, false
}
