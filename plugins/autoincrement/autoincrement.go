/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package autoincrement

import (
	"strings"
	"sync"
	"time"

	"github.com/radondb/shardcore/router"

	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// AutoIncrement fills the auto-increment column the inserts omit.
// Every table has its own sequence, seeded by the clock on first use.
type AutoIncrement struct {
	mu     sync.Mutex
	log    *xlog.Log
	router *router.Router
	seed   func() uint64
	seqs   map[string]uint64
}

// NewAutoIncrement creates the AutoIncrement.
func NewAutoIncrement(log *xlog.Log, router *router.Router) *AutoIncrement {
	return &AutoIncrement{
		log:    log,
		router: router,
		seed:   func() uint64 { return uint64(time.Now().UnixNano()) },
	}
}

// Init resets the sequences.
func (autoinc *AutoIncrement) Init() error {
	autoinc.mu.Lock()
	defer autoinc.mu.Unlock()
	autoinc.seqs = make(map[string]uint64)
	return nil
}

// reserve takes n values of the table sequence and returns the value
// before the first of them.
func (autoinc *AutoIncrement) reserve(key string, n int) uint64 {
	autoinc.mu.Lock()
	defer autoinc.mu.Unlock()
	if autoinc.seqs == nil {
		autoinc.seqs = make(map[string]uint64)
	}
	seq, ok := autoinc.seqs[key]
	if !ok {
		seq = autoinc.seed()
	}
	autoinc.seqs[key] = seq + uint64(n)
	return seq
}

// Process appends the auto-increment column and one generated value per
// row when the insert does not carry the column.
func (autoinc *AutoIncrement) Process(database string, ins *sqlparser.Insert) error {
	if !ins.Table.Qualifier.IsEmpty() {
		database = ins.Table.Qualifier.String()
	}
	table := ins.Table.Name.String()

	tbl, err := autoinc.router.TableConfig(database, table)
	if err != nil {
		return err
	}
	if tbl.AutoIncrement == nil {
		return nil
	}
	if err := CheckAutoIncrement(tbl); err != nil {
		return err
	}
	column := tbl.AutoIncrement.Column
	if hasColumn(ins, column) {
		return nil
	}
	// Rows from a select are left to the backends.
	rows, ok := ins.Rows.(sqlparser.Values)
	if !ok {
		return nil
	}

	seq := autoinc.reserve(strings.ToLower(database+"."+table), len(rows))
	appendColumn(ins, rows, column, seq)
	autoinc.log.Debug("autoincrement.table[%s.%s].column[%s].from[%d].rows[%d]", database, table, column, seq+1, len(rows))
	return nil
}

// Close implements Handler.
func (autoinc *AutoIncrement) Close() error {
	return nil
}

var _ Handler = (*AutoIncrement)(nil)
