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
	"time"
)

// ShardingRule tells the engine which columns shard a table.
type ShardingRule interface {
	// ShardingColumns returns the sharding columns of the table,
	// nil if the table is not sharded.
	ShardingColumns(database, table string) []string
}

// TimeService resolves now()-style functions.
type TimeService interface {
	Now(ctx context.Context) (time.Time, error)
}

// SystemTimeService uses the local clock.
type SystemTimeService struct{}

// Now returns time.Now().
func (SystemTimeService) Now(ctx context.Context) (time.Time, error) {
	return time.Now(), nil
}

// isShardingColumn returns true if the column shards the table.
func isShardingColumn(rule ShardingRule, database, table, column string) bool {
	for _, c := range rule.ShardingColumns(database, table) {
		if strings.EqualFold(c, column) {
			return true
		}
	}
	return false
}

var timeFunctions = map[string]struct{}{
	"now":               {},
	"current_timestamp": {},
	"sysdate":           {},
	"localtime":         {},
	"localtimestamp":    {},
}

// IsTimeFunction returns true if the function yields the current time.
func IsTimeFunction(name string) bool {
	_, ok := timeFunctions[strings.ToLower(name)]
	return ok
}
