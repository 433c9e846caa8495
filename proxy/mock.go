/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"fmt"
	"math/rand"
	"os"
	"path"
	"time"

	"github.com/radondb/shardcore/backend"
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/executor"
	"github.com/radondb/shardcore/fakedb"

	"github.com/xelabs/go-mysqlstack/xlog"
)

func randomPort(min int, max int) int {
	rand := rand.New(rand.NewSource(time.Now().UnixNano()))
	d, delta := min, (max - min)
	if delta > 0 {
		d += rand.Intn(int(delta))
	}
	return d
}

// MockDefaultConfig mocks the default config.
func MockDefaultConfig() *config.Config {
	conf := &config.Config{
		Proxy:    config.DefaultProxyConfig(),
		Router:   config.DefaultRouterConfig(),
		Merge:    config.DefaultMergeConfig(),
		Log:      config.DefaultLogConfig(),
		Monitor:  &config.MonitorConfig{},
		Backends: &config.BackendsConfig{},
	}
	conf.Proxy.QueryTimeout = 5 * 1000
	return conf
}

// MockProxy mocks a proxy over 3 fake backends with the t_order list table
// in database sbtest.
func MockProxy(log *xlog.Log) (*fakedb.DB, *Proxy, func()) {
	return MockProxy1(log, MockDefaultConfig())
}

// MockProxy1 mocks the proxy with config.
func MockProxy1(log *xlog.Log, conf *config.Config) (*fakedb.DB, *Proxy, func()) {
	tmpDir := fakedb.GetTmpDir("", "shardcore_mock_", log)
	fakedbs := fakedb.New(log, 3)

	conf.Proxy.PeerAddress = fmt.Sprintf("127.0.0.1:%d", randomPort(15000, 20000))
	conf.Backends = &config.BackendsConfig{Backends: fakedbs.BackendConfs()}
	conf.Schemas = []*config.SchemaConfig{
		&config.SchemaConfig{
			DB:     executor.MockDatabase,
			Tables: []*config.TableConfig{executor.MockTableOrderConfig()},
		},
	}

	proxy := NewProxyWithFactory(log, path.Join(tmpDir, "shardcore_mock.json"), conf, backend.MockFactory(fakedbs))
	if err := proxy.Start(); err != nil {
		log.Panic("mock.proxy.start.error:%+v", err)
	}
	return fakedbs, proxy, func() {
		proxy.Stop()
		fakedbs.Close()
		os.RemoveAll(tmpDir)
	}
}
