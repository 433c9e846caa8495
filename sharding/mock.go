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

// MockRule maps the lower case table name to its sharding columns,
// regardless of the database.
type MockRule map[string][]string

// ShardingColumns implements ShardingRule.
func (r MockRule) ShardingColumns(database, table string) []string {
	return r[strings.ToLower(table)]
}

// MockTimeService returns the fixed time or error.
type MockTimeService struct {
	Time  time.Time
	Err   error
	Calls int
}

// Now implements TimeService.
func (s *MockTimeService) Now(ctx context.Context) (time.Time, error) {
	s.Calls++
	return s.Time, s.Err
}
