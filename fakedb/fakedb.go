/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

// Package fakedb is an in-memory stand-in of the shard databases,
// answering the queries registered by the tests.
package fakedb

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/merger"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	// Result1 result.
	Result1 = merger.MockResult([]string{"id", "name"},
		[]interface{}{11, "1nice name"},
		[]interface{}{12, nil},
	)

	// Result2 result.
	Result2 = merger.MockResult([]string{"id", "name"},
		[]interface{}{21, "2nice name"},
		[]interface{}{22, nil},
	)

	// Result3 result.
	Result3 = merger.MockResult([]string{"id", "name"})
)

// GetTmpDir used to create a test tmp dir
// dir: path specified, can be an empty string
// module: the name of test module
func GetTmpDir(dir, module string, log *xlog.Log) string {
	if dir == "" {
		dir = os.TempDir()
	}
	tmpDir, err := os.MkdirTemp(dir, module)
	if err != nil {
		log.Error("%v.test.can't.create.temp.dir.in:[%v]", module, dir)
	}
	return tmpDir
}

type exchange struct {
	result   *merger.ResultSet
	affected uint64
	insertID uint64
	err      error
	delay    time.Duration
}

type pattern struct {
	expr *regexp.Regexp
	exchange
}

// DB is a fake database serving n backends.
type DB struct {
	log          *xlog.Log
	mu           sync.RWMutex
	backendconfs []*config.BackendConfig
	backends     map[string]*Backend
	querys       map[string]*exchange
	patterns     []*pattern
	called       map[string]int
}

// New creates a new DB.
func New(log *xlog.Log, n int) *DB {
	db := &DB{
		log:      log,
		backends: make(map[string]*Backend),
		querys:   make(map[string]*exchange),
		called:   make(map[string]int),
	}
	for i := 0; i < n; i++ {
		conf := &config.BackendConfig{
			Name:           fmt.Sprintf("backend%d", i),
			Address:        fmt.Sprintf("127.0.0.1:%d", 3306+i),
			User:           "mock",
			Password:       "pwd",
			DBName:         "sbtest",
			Charset:        "utf8",
			MaxConnections: 1024,
		}
		db.backendconfs = append(db.backendconfs, conf)
		db.backends[conf.Name] = &Backend{db: db, name: conf.Name}
	}
	return db
}

// BackendConfs used to get all backend configs.
func (db *DB) BackendConfs() []*config.BackendConfig {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.backendconfs
}

// Backend returns the fake backend of the config, reopened.
func (db *DB) Backend(conf *config.BackendConfig) *Backend {
	db.mu.Lock()
	defer db.mu.Unlock()
	b, ok := db.backends[conf.Name]
	if !ok {
		b = &Backend{db: db, name: conf.Name}
		db.backends[conf.Name] = b
	}
	b.closed = false
	return b
}

// Close used to close all the backends.
func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, b := range db.backends {
		b.closed = true
	}
}

// AddQuery used to add a query and the return result expected.
func (db *DB) AddQuery(query string, result *merger.ResultSet) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.querys[strings.ToLower(query)] = &exchange{result: result}
}

// AddQueryDelay used to add query and return by delay.
func (db *DB) AddQueryDelay(query string, result *merger.ResultSet, delayMS int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.querys[strings.ToLower(query)] = &exchange{result: result, delay: time.Duration(delayMS) * time.Millisecond}
}

// AddExec used to add a dml and the rows it affects.
func (db *DB) AddExec(query string, affected, insertID uint64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.querys[strings.ToLower(query)] = &exchange{affected: affected, insertID: insertID}
}

// AddQueryError use to add a query and return the error expected.
func (db *DB) AddQueryError(query string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.querys[strings.ToLower(query)] = &exchange{err: err}
}

// AddQueryPattern used to add an expected result for a set of queries.
func (db *DB) AddQueryPattern(qp string, result *merger.ResultSet) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.patterns = append(db.patterns, &pattern{expr: regexp.MustCompile("(?is)^" + qp + "$"), exchange: exchange{result: result}})
}

// AddExecPattern used to add the rows affected by a set of dmls.
func (db *DB) AddExecPattern(qp string, affected uint64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.patterns = append(db.patterns, &pattern{expr: regexp.MustCompile("(?is)^" + qp + "$"), exchange: exchange{affected: affected}})
}

// GetQueryCalledNum returns how many times db executes a certain query.
func (db *DB) GetQueryCalledNum(query string) int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.called[strings.ToLower(query)]
}

// Called returns the number of queries received by all the backends.
func (db *DB) Called() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	n := 0
	for _, c := range db.called {
		n += c
	}
	return n
}

// ResetAll will reset all, including: query and query patterns.
func (db *DB) ResetAll() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.querys = make(map[string]*exchange)
	db.patterns = nil
	db.called = make(map[string]int)
}

func (db *DB) lookup(query string) (*exchange, error) {
	key := strings.ToLower(query)
	db.mu.Lock()
	defer db.mu.Unlock()
	db.called[key]++
	if ex, ok := db.querys[key]; ok {
		return ex, nil
	}
	for _, p := range db.patterns {
		if p.expr.MatchString(query) {
			return &p.exchange, nil
		}
	}
	db.log.Error("fakedb.query[%s].not.found", query)
	return nil, errors.Errorf("fakedb.query[%s].not.found", query)
}

// Backend is one fake shard database.
type Backend struct {
	db     *DB
	name   string
	closed bool
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return b.name
}

func (b *Backend) exchange(ctx context.Context, query string) (*exchange, error) {
	if b.closed {
		return nil, errors.Errorf("fakedb.backend[%s].closed", b.name)
	}
	ex, err := b.db.lookup(query)
	if err != nil {
		return nil, err
	}
	if ex.delay > 0 {
		select {
		case <-time.After(ex.delay):
		case <-ctx.Done():
			return nil, errors.WithStack(ctx.Err())
		}
	}
	if ex.err != nil {
		return nil, ex.err
	}
	return ex, nil
}

// Query returns a fresh cursor over the registered rows.
func (b *Backend) Query(ctx context.Context, query string) (merger.QueryResult, error) {
	ex, err := b.exchange(ctx, query)
	if err != nil {
		return nil, err
	}
	if ex.result == nil {
		return nil, errors.Errorf("fakedb.query[%s].has.no.result", query)
	}
	return merger.NewResultSet(ex.result.Fields, ex.result.Rows), nil
}

// Exec returns the registered rows affected.
func (b *Backend) Exec(ctx context.Context, query string) (uint64, uint64, error) {
	ex, err := b.exchange(ctx, query)
	if err != nil {
		return 0, 0, err
	}
	return ex.affected, ex.insertID, nil
}

// Close marks the backend closed.
func (b *Backend) Close() error {
	b.closed = true
	return nil
}
