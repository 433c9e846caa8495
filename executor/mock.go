/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package executor

import (
	"github.com/radondb/shardcore/backend"
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/fakedb"
	"github.com/radondb/shardcore/plugins/autoincrement"
	"github.com/radondb/shardcore/router"

	"github.com/xelabs/go-mysqlstack/xlog"
)

const (
	// MockDatabase is the database of the mock engine.
	MockDatabase = "sbtest"
)

// MockTableOrderConfig config, list shardtype on the three fake backends.
func MockTableOrderConfig() *config.TableConfig {
	return &config.TableConfig{
		Name:      "t_order",
		ShardType: "LIST",
		ShardKey:  "id",
		Partitions: []*config.PartitionConfig{
			&config.PartitionConfig{Table: "t_order_0", Backend: "backend0", ListValue: "1"},
			&config.PartitionConfig{Table: "t_order_1", Backend: "backend1", ListValue: "2"},
			&config.PartitionConfig{Table: "t_order_2", Backend: "backend2", ListValue: "3"},
		},
	}
}

// MockEngine mocks an engine over three fake backends holding:
// t_order LIST(id), t_user HASH(id) in 8 partitions, t_global GLOBAL and
// t_single SINGLE with the auto-increment column id.
func MockEngine(log *xlog.Log) (*Engine, *fakedb.DB, func()) {
	scatter, fakedbs, cleanup := backend.MockScatter(log, 3)
	backends := scatter.Backends()

	route := router.MockNewRouter(log)
	user, err := route.HashUniform("t_user", "id", backends, 8)
	if err != nil {
		log.Panic("mock.engine.hash.error:%+v", err)
	}
	global, err := route.GlobalUniform("t_global", backends)
	if err != nil {
		log.Panic("mock.engine.global.error:%+v", err)
	}
	single, err := route.SingleUniform("t_single", backends)
	if err != nil {
		log.Panic("mock.engine.single.error:%+v", err)
	}
	single.AutoIncrement = &config.AutoIncrement{Column: "id"}

	schema := &config.SchemaConfig{
		DB:     MockDatabase,
		Tables: []*config.TableConfig{MockTableOrderConfig(), user, global, single},
	}
	if err := route.LoadSchemas([]*config.SchemaConfig{schema}); err != nil {
		log.Panic("mock.engine.load.schemas.error:%+v", err)
	}

	autoinc := autoincrement.NewAutoIncrement(log, route)
	if err := autoinc.Init(); err != nil {
		log.Panic("mock.engine.autoinc.error:%+v", err)
	}

	conf := &config.Config{
		Proxy: &config.ProxyConfig{QueryTimeout: 1000},
		Merge: config.DefaultMergeConfig(),
	}
	return NewEngine(log, conf, route, scatter, autoinc, nil), fakedbs, func() {
		autoinc.Close()
		cleanup()
	}
}

// MockRows renders the rows of the result as strings, NULL is "NULL".
func MockRows(res *Result) [][]string {
	var rows [][]string
	for _, r := range res.Rows {
		row := make([]string, len(r))
		for i, d := range r {
			if datum.CheckNull(d) {
				row[i] = "NULL"
			} else {
				row[i] = d.ValStr()
			}
		}
		rows = append(rows, row)
	}
	return rows
}
