/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package config

import (
	"fmt"
)

// MockBackendsConfig returns n backends named backend1..backendN.
func MockBackendsConfig(n int) []*BackendConfig {
	backends := make([]*BackendConfig, 0, n)
	for i := 1; i <= n; i++ {
		backends = append(backends, &BackendConfig{
			Name:           fmt.Sprintf("backend%d", i),
			Address:        fmt.Sprintf("127.0.0.1:%d", 3303+i),
			User:           "root",
			MaxConnections: 1024,
		})
	}
	return backends
}

// MockHashTableConfig returns the table A hashed on id over backend1 and
// backend2, with id as the auto-increment column.
func MockHashTableConfig() *TableConfig {
	return &TableConfig{
		Name:      "A",
		ShardType: "HASH",
		ShardKey:  "id",
		Partitions: []*PartitionConfig{
			{Table: "A1", Segment: "0-2048", Backend: "backend1"},
			{Table: "A2", Segment: "2048-4096", Backend: "backend2"},
		},
		AutoIncrement: &AutoIncrement{Column: "id"},
	}
}

// MockSchemaConfig returns the sbtest schema: A hashed, G global and L listed.
func MockSchemaConfig() *SchemaConfig {
	return &SchemaConfig{
		DB: "sbtest",
		Tables: []*TableConfig{
			MockHashTableConfig(),
			{
				Name:      "G",
				ShardType: "GLOBAL",
				Partitions: []*PartitionConfig{
					{Table: "G", Backend: "backend1"},
					{Table: "G", Backend: "backend2"},
				},
			},
			{
				Name:      "L",
				ShardType: "LIST",
				ShardKey:  "id",
				Partitions: []*PartitionConfig{
					{Table: "L1", Backend: "backend1", ListValue: "1"},
					{Table: "L2", Backend: "backend2", ListValue: "2"},
				},
			},
		},
	}
}

// MockConfig returns a complete config over two backends.
func MockConfig() *Config {
	return &Config{
		Proxy:    &ProxyConfig{PeerAddress: ":8080", MaxConcurrency: 16, QueryTimeout: 1000},
		Log:      &LogConfig{Level: "DEBUG"},
		Router:   DefaultRouterConfig(),
		Merge:    DefaultMergeConfig(),
		Monitor:  DefaultMonitorConfig(),
		Backends: &BackendsConfig{Backends: MockBackendsConfig(2)},
		Schemas:  []*SchemaConfig{MockSchemaConfig()},
	}
}
