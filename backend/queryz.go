/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"sort"
	"sync"
	"time"

	"github.com/radondb/shardcore/xbase"
	"github.com/radondb/shardcore/xcontext"
)

const maxQueryzQueryLen = 256

// RunningQuery is a shard query in flight.
type RunningQuery struct {
	Backend  string        `json:"backend"`
	Range    string        `json:"range,omitempty"`
	Query    string        `json:"query"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Color    string        `json:"color"`
}

// Queryz tracks the shard queries the scatter is running.
type Queryz struct {
	mu      sync.Mutex
	seq     uint64
	running map[uint64]*RunningQuery
}

// NewQueryz creates the new Queryz.
func NewQueryz() *Queryz {
	return &Queryz{running: make(map[uint64]*RunningQuery)}
}

// Begin registers the query tuple, the returned func unregisters it.
func (qz *Queryz) Begin(t xcontext.QueryTuple) func() {
	q := &RunningQuery{
		Backend: t.Backend,
		Range:   t.Range,
		Query:   xbase.TruncateQuery(t.Query, maxQueryzQueryLen),
		Start:   time.Now(),
	}

	qz.mu.Lock()
	qz.seq++
	id := qz.seq
	qz.running[id] = q
	qz.mu.Unlock()

	return func() {
		qz.mu.Lock()
		delete(qz.running, id)
		qz.mu.Unlock()
	}
}

// Rows returns at most limit running queries, oldest first.
// A negative limit returns all of them.
func (qz *Queryz) Rows(limit int) []RunningQuery {
	now := time.Now()
	qz.mu.Lock()
	rows := make([]RunningQuery, 0, len(qz.running))
	for _, q := range qz.running {
		row := *q
		row.Duration = now.Sub(q.Start)
		row.Color = durationColor(row.Duration)
		rows = append(rows, row)
	}
	qz.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].Start.Before(rows[j].Start) })
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func durationColor(d time.Duration) string {
	switch {
	case d < 10*time.Millisecond:
		return "low"
	case d < 100*time.Millisecond:
		return "medium"
	}
	return "high"
}
