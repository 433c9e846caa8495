/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package autoincrement

import (
	"strconv"
	"strings"

	"github.com/radondb/shardcore/config"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// Handler fills the auto-increment column of the inserts.
type Handler interface {
	Init() error
	Process(database string, ins *sqlparser.Insert) error
	Close() error
}

// CheckAutoIncrement returns an error if the table config carries an invalid auto-increment.
func CheckAutoIncrement(tbl *config.TableConfig) error {
	if tbl.AutoIncrement == nil {
		return nil
	}
	if strings.TrimSpace(tbl.AutoIncrement.Column) == "" {
		return errors.Errorf("autoincrement.table[%s].column.can.not.be.empty", tbl.Name)
	}
	return nil
}

func hasColumn(ins *sqlparser.Insert, column string) bool {
	return ins.Columns.FindColumn(sqlparser.NewColIdent(column)) >= 0
}

// appendColumn adds the column last, row i gets seq+i+1.
func appendColumn(ins *sqlparser.Insert, rows sqlparser.Values, column string, seq uint64) {
	ins.Columns = append(ins.Columns, sqlparser.NewColIdent(column))
	for i := range rows {
		seq++
		rows[i] = append(rows[i], sqlparser.NewIntVal([]byte(strconv.FormatUint(seq, 10))))
	}
	ins.Rows = rows
}
