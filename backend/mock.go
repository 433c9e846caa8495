/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/fakedb"

	"github.com/xelabs/go-mysqlstack/xlog"
)

// MockBackendConfigDefault mocks new backend config.
func MockBackendConfigDefault(name, addr string) *config.BackendConfig {
	return &config.BackendConfig{
		Name:           name,
		Address:        addr,
		User:           "mock",
		Password:       "pwd",
		DBName:         "sbtest",
		Charset:        "utf8",
		MaxConnections: 1024,
	}
}

// MockFactory returns the factory serving the backends of the fake db.
func MockFactory(db *fakedb.DB) Factory {
	return func(log *xlog.Log, conf *config.BackendConfig) (Backend, error) {
		return db.Backend(conf), nil
	}
}

// MockScatter used to mock a scatter.
func MockScatter(log *xlog.Log, n int) (*Scatter, *fakedb.DB, func()) {
	fakedb := fakedb.New(log, n)
	scatter := NewScatter(log, MockFactory(fakedb), 0)
	if err := scatter.LoadConfig(&config.BackendsConfig{Backends: fakedb.BackendConfs()}); err != nil {
		log.Panic("mock.scatter.error:%+v", err)
	}

	return scatter, fakedb, func() {
		scatter.Close()
		fakedb.Close()
	}
}
