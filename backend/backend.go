/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"context"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/merger"

	"github.com/xelabs/go-mysqlstack/xlog"
)

// Backend is one shard database.
type Backend interface {
	Name() string

	// Query returns the cursor of the select, read under ctx.
	Query(ctx context.Context, query string) (merger.QueryResult, error)

	// Exec returns the rows affected and the last insert id.
	Exec(ctx context.Context, query string) (uint64, uint64, error)
	Close() error
}

// Factory creates the backend of the config.
type Factory func(log *xlog.Log, conf *config.BackendConfig) (Backend, error)

// PoolFactory creates MySQL pools.
func PoolFactory(log *xlog.Log, conf *config.BackendConfig) (Backend, error) {
	return NewPool(log, conf)
}
