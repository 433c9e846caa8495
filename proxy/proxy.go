/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"context"
	"sync"

	"github.com/radondb/shardcore/backend"
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/executor"
	"github.com/radondb/shardcore/plugins"
	"github.com/radondb/shardcore/router"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// Proxy tuple.
type Proxy struct {
	mu       sync.RWMutex
	log      *xlog.Log
	conf     *config.Config
	confPath string
	router   *router.Router
	scatter  *backend.Scatter
	plugins  *plugins.Plugin
	engine   *executor.Engine
}

// NewProxy creates new proxy over mysql backends.
func NewProxy(log *xlog.Log, path string, conf *config.Config) *Proxy {
	return NewProxyWithFactory(log, path, conf, backend.PoolFactory)
}

// NewProxyWithFactory creates new proxy whose backends are made by factory.
func NewProxyWithFactory(log *xlog.Log, path string, conf *config.Config, factory backend.Factory) *Proxy {
	router := router.NewRouter(log, conf.Router)
	scatter := backend.NewScatter(log, factory, conf.Proxy.MaxConcurrency)
	return &Proxy{
		log:      log,
		conf:     conf,
		confPath: path,
		router:   router,
		scatter:  scatter,
		plugins:  plugins.NewPlugin(log, router),
	}
}

// Start loads the backends and the schemas, then builds the engine.
func (p *Proxy) Start() error {
	log := p.log
	conf := p.conf

	log.Info("proxy.config[%+v]...", conf.Proxy)
	log.Info("merge.config[%+v]...", conf.Merge)
	if err := p.scatter.LoadConfig(conf.Backends); err != nil {
		log.Error("proxy.scatter.load.config.error:%+v", err)
		return err
	}
	if err := p.router.LoadSchemas(conf.Schemas); err != nil {
		log.Error("proxy.router.load.schemas.error:%+v", err)
		return err
	}
	if err := p.plugins.Init(); err != nil {
		log.Error("proxy.plugins.init.error:%+v", err)
		return err
	}
	timeService := backend.NewDatabaseTimeService(p.scatter)
	p.engine = executor.NewEngine(log, conf, p.router, p.scatter, p.plugins.PlugAutoIncrement(), timeService)
	log.Info("proxy.started.backends%v.tables%v", p.scatter.Backends(), p.router.Tables())
	return nil
}

// Stop used to stop the proxy.
func (p *Proxy) Stop() {
	log := p.log

	log.Info("proxy.starting.shutdown...")
	p.plugins.Close()
	p.scatter.Close()
	log.Info("proxy.shutdown.complete...")
}

// Config returns the config.
func (p *Proxy) Config() *config.Config {
	return p.conf
}

// Scatter returns the scatter.
func (p *Proxy) Scatter() *backend.Scatter {
	return p.scatter
}

// Router returns the router.
func (p *Proxy) Router() *router.Router {
	return p.router
}

// Engine returns the engine, nil before Start.
func (p *Proxy) Engine() *executor.Engine {
	return p.engine
}

// Execute runs the statement on the shards.
func (p *Proxy) Execute(ctx context.Context, database string, stmt sqlparser.Statement, params []interface{}) (*executor.Result, error) {
	if p.engine == nil {
		return nil, errors.New("proxy.not.started")
	}
	return p.engine.Execute(ctx, database, stmt, params)
}

// Explain returns the routing of the statement.
func (p *Proxy) Explain(ctx context.Context, database string, stmt sqlparser.Statement, params []interface{}) (string, error) {
	if p.engine == nil {
		return "", errors.New("proxy.not.started")
	}
	return p.engine.Explain(ctx, database, stmt, params)
}

// PeerAddress returns the admin address.
func (p *Proxy) PeerAddress() string {
	return p.conf.Proxy.PeerAddress
}

// SetQueryTimeout used to set query timeout.
func (p *Proxy) SetQueryTimeout(timeout int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Info("proxy.SetQueryTimeout:[%d->%d]", p.conf.Proxy.QueryTimeout, timeout)
	p.conf.Proxy.QueryTimeout = timeout
}

// SetStreamGroupBy used to enable/disable the stream group by.
func (p *Proxy) SetStreamGroupBy(enable bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Info("proxy.SetStreamGroupBy:[%v->%v]", p.conf.Merge.StreamGroupBy, enable)
	p.conf.Merge.StreamGroupBy = enable
}

// SetMaxMemoryRows used to set the rows a memory group by may hold.
func (p *Proxy) SetMaxMemoryRows(rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Info("proxy.SetMaxMemoryRows:[%d->%d]", p.conf.Merge.MaxMemoryRows, rows)
	p.conf.Merge.MaxMemoryRows = rows
}

// SetThrottle used to set the throttle of the backend queries.
func (p *Proxy) SetThrottle(val int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	throttle := p.scatter.Throttle()
	p.log.Info("proxy.SetThrottle:[%v->%v]", throttle.Limits(), val)
	throttle.Set(val)
}

// AddBackend adds the backend to the scatter and the config.
func (p *Proxy) AddBackend(conf *config.BackendConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.scatter.Add(conf); err != nil {
		return err
	}
	p.conf.Backends.Backends = append(p.conf.Backends.Backends, conf)
	return nil
}

// RemoveBackend removes the backend, it fails while a table has partitions on it.
func (p *Proxy) RemoveBackend(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, schema := range p.conf.Schemas {
		for _, tbl := range schema.Tables {
			for _, part := range tbl.Partitions {
				if part.Backend == name {
					return errors.Errorf("proxy.backend[%s].is.used.by.table[%s.%s]", name, schema.DB, tbl.Name)
				}
			}
		}
	}
	if err := p.scatter.Remove(name); err != nil {
		return err
	}
	backends := make([]*config.BackendConfig, 0, len(p.conf.Backends.Backends))
	for _, b := range p.conf.Backends.Backends {
		if b.Name != name {
			backends = append(backends, b)
		}
	}
	p.conf.Backends.Backends = backends
	return nil
}

// AddTable adds the table to the router and the config.
func (p *Proxy) AddTable(database string, tbl *config.TableConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, part := range tbl.Partitions {
		if _, err := p.scatter.Backend(part.Backend); err != nil {
			return err
		}
	}
	if err := p.router.AddTable(database, tbl); err != nil {
		return err
	}
	for _, schema := range p.conf.Schemas {
		if schema.DB == database {
			schema.Tables = append(schema.Tables, tbl)
			return nil
		}
	}
	p.conf.Schemas = append(p.conf.Schemas, &config.SchemaConfig{DB: database, Tables: []*config.TableConfig{tbl}})
	return nil
}

// FlushConfig used to flush the config to disk.
func (p *Proxy) FlushConfig() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.confPath == "" {
		return nil
	}
	p.log.Info("proxy.flush.config.to.file:%v", p.confPath)
	if err := config.WriteConfig(p.confPath, p.conf); err != nil {
		p.log.Error("proxy.flush.config.to.file[%v].error:%v", p.confPath, err)
		return err
	}
	return nil
}
