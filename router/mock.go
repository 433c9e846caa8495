/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"github.com/radondb/shardcore/config"

	"github.com/xelabs/go-mysqlstack/xlog"
)

// MockTableAConfig config, 4 hash partitions on 2 backends.
func MockTableAConfig() *config.TableConfig {
	return &config.TableConfig{
		Name:      "A",
		ShardType: "HASH",
		ShardKey:  "id",
		Partitions: []*config.PartitionConfig{
			&config.PartitionConfig{Table: "A0", Segment: "0-1024", Backend: "backend1"},
			&config.PartitionConfig{Table: "A1", Segment: "1024-2048", Backend: "backend1"},
			&config.PartitionConfig{Table: "A3", Segment: "3072-4096", Backend: "backend2"},
			&config.PartitionConfig{Table: "A2", Segment: "2048-3072", Backend: "backend2"},
		},
	}
}

// MockTableOverlapConfig config.
func MockTableOverlapConfig() *config.TableConfig {
	mock := MockTableAConfig()
	mock.Partitions[1].Segment = "1000-2048"
	return mock
}

// MockTableInvalidConfig config.
func MockTableInvalidConfig() *config.TableConfig {
	mock := MockTableAConfig()
	mock.Partitions[1].Segment = "1024-x"
	return mock
}

// MockTableGreaterThanConfig config.
func MockTableGreaterThanConfig() *config.TableConfig {
	mock := MockTableAConfig()
	mock.Partitions[1].Segment = "2048-1024"
	return mock
}

// MockTable64Config config.
func MockTable64Config() *config.TableConfig {
	return &config.TableConfig{
		Name:      "A",
		ShardType: "HASH",
		ShardKey:  "id",
		Partitions: []*config.PartitionConfig{
			&config.PartitionConfig{Table: "A0", Segment: "0-64", Backend: "backend1"},
		},
	}
}

// MockTableLConfig config, list shardtype.
func MockTableLConfig() *config.TableConfig {
	return &config.TableConfig{
		Name:      "L",
		ShardType: "LIST",
		ShardKey:  "id",
		Partitions: []*config.PartitionConfig{
			&config.PartitionConfig{Table: "L1", Backend: "backend1", ListValue: "1"},
			&config.PartitionConfig{Table: "L2", Backend: "backend2", ListValue: "2"},
			&config.PartitionConfig{Table: "L3", Backend: "backend1", ListValue: "3"},
		},
	}
}

// MockTableGConfig config, global shardtype.
func MockTableGConfig() *config.TableConfig {
	return &config.TableConfig{
		Name:      "G",
		ShardType: "GLOBAL",
		Partitions: []*config.PartitionConfig{
			&config.PartitionConfig{Table: "G", Backend: "backend1"},
			&config.PartitionConfig{Table: "G", Backend: "backend2"},
		},
	}
}

// MockTableSConfig config, single shardtype.
func MockTableSConfig() *config.TableConfig {
	return &config.TableConfig{
		Name:      "S",
		ShardType: "SINGLE",
		Partitions: []*config.PartitionConfig{
			&config.PartitionConfig{Table: "S", Backend: "backend1"},
		},
	}
}

// MockNewRouterConfig returns the router config.
func MockNewRouterConfig() *config.RouterConfig {
	return &config.RouterConfig{
		Slots:  4096,
		Blocks: 128,
	}
}

// MockNewRouter mocks router.
func MockNewRouter(log *xlog.Log) *Router {
	return NewRouter(log, MockNewRouterConfig())
}

// MockNewRouterWithTables mocks router holding tables A, L, G and S of the database.
func MockNewRouterWithTables(log *xlog.Log, db string) (*Router, error) {
	router := MockNewRouter(log)
	schema := &config.SchemaConfig{
		DB: db,
		Tables: []*config.TableConfig{
			MockTableAConfig(),
			MockTableLConfig(),
			MockTableGConfig(),
			MockTableSConfig(),
		},
	}
	if err := router.LoadSchemas([]*config.SchemaConfig{schema}); err != nil {
		return nil, err
	}
	return router, nil
}
