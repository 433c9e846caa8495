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
	"sort"
	"sync"
	"time"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/merger"
	"github.com/radondb/shardcore/monitor"
	"github.com/radondb/shardcore/xbase"
	"github.com/radondb/shardcore/xcontext"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
	"golang.org/x/sync/errgroup"
)

// Scatter tuple.
type Scatter struct {
	log      *xlog.Log
	mu       sync.RWMutex
	factory  Factory
	confs    map[string]*config.BackendConfig
	backends map[string]Backend
	throttle *xbase.Throttle
	queryz   *Queryz

	// Max concurrent backend queries of one request, 0 means unlimited.
	maxConcurrency int
}

// NewScatter creates a new scatter.
func NewScatter(log *xlog.Log, factory Factory, maxConcurrency int) *Scatter {
	return &Scatter{
		log:            log,
		factory:        factory,
		confs:          make(map[string]*config.BackendConfig),
		backends:       make(map[string]Backend),
		throttle:       xbase.NewThrottle(0),
		queryz:         NewQueryz(),
		maxConcurrency: maxConcurrency,
	}
}

// Add backend node.
func (scatter *Scatter) add(config *config.BackendConfig) error {
	log := scatter.log
	log.Warning("scatter.add:%v", config.Name)

	if _, ok := scatter.backends[config.Name]; ok {
		return errors.Errorf("scatter.backend[%v].duplicate", config.Name)
	}
	for _, conf := range scatter.confs {
		if conf.Address == config.Address {
			return errors.Errorf("scatter.backend[%v].address[%v].duplicate", config.Name, config.Address)
		}
	}
	b, err := scatter.factory(log, config)
	if err != nil {
		return err
	}
	scatter.backends[config.Name] = b
	scatter.confs[config.Name] = config
	monitor.BackendInc("normal")
	return nil
}

// Add used to add a new backend to scatter.
func (scatter *Scatter) Add(config *config.BackendConfig) error {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()
	return scatter.add(config)
}

func (scatter *Scatter) remove(name string) error {
	log := scatter.log
	log.Warning("scatter.remove:%v", name)

	b, ok := scatter.backends[name]
	if !ok {
		return errors.Errorf("scatter.backend[%v].can.not.be.found", name)
	}
	delete(scatter.backends, name)
	delete(scatter.confs, name)
	monitor.BackendDec("normal")
	return b.Close()
}

// Remove used to remove a backend from the scatter.
func (scatter *Scatter) Remove(name string) error {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()
	return scatter.remove(name)
}

// LoadConfig replaces all the backends with the ones of the config.
func (scatter *Scatter) LoadConfig(conf *config.BackendsConfig) error {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()

	scatter.clear()
	for _, backend := range conf.Backends {
		if err := scatter.add(backend); err != nil {
			scatter.log.Error("scatter.add.backend[%+v].error:%v", backend.Name, err)
			return err
		}
	}
	return nil
}

// Close used to clean the pools connections.
func (scatter *Scatter) Close() {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()

	log := scatter.log
	log.Info("scatter.prepare.to.close....")
	scatter.clear()
	log.Info("scatter.close.done....")
}

func (scatter *Scatter) clear() {
	for name := range scatter.backends {
		if err := scatter.remove(name); err != nil {
			scatter.log.Error("scatter.close.backend[%s].error:%v", name, err)
		}
	}
}

// Backends returns the backend names, sorted.
func (scatter *Scatter) Backends() []string {
	scatter.mu.RLock()
	defer scatter.mu.RUnlock()

	var backends []string
	for name := range scatter.backends {
		backends = append(backends, name)
	}
	sort.Strings(backends)
	return backends
}

// BackendConfigs returns the backend configs, sorted by name.
func (scatter *Scatter) BackendConfigs() []*config.BackendConfig {
	scatter.mu.RLock()
	defer scatter.mu.RUnlock()

	confs := make([]*config.BackendConfig, 0, len(scatter.confs))
	for _, conf := range scatter.confs {
		confs = append(confs, conf)
	}
	sort.Slice(confs, func(i, j int) bool { return confs[i].Name < confs[j].Name })
	return confs
}

// Backend returns the backend by name.
func (scatter *Scatter) Backend(name string) (Backend, error) {
	scatter.mu.RLock()
	defer scatter.mu.RUnlock()

	b, ok := scatter.backends[name]
	if !ok {
		return nil, errors.Errorf("scatter.backend[%v].can.not.be.found", name)
	}
	return b, nil
}

// Throttle returns the shard query throttle.
func (scatter *Scatter) Throttle() *xbase.Throttle {
	return scatter.throttle
}

// Queryz returns the running shard queries.
func (scatter *Scatter) Queryz() *Queryz {
	return scatter.queryz
}

// tuples expands the request into the queries to run, in order.
func (scatter *Scatter) tuples(req *xcontext.RequestContext) []xcontext.QueryTuple {
	switch req.Mode {
	case xcontext.ReqScatter:
		var tuples []xcontext.QueryTuple
		for _, name := range scatter.Backends() {
			tuples = append(tuples, xcontext.QueryTuple{Query: req.RawQuery, Backend: name})
		}
		return tuples
	case xcontext.ReqSingle:
		if backends := scatter.Backends(); len(backends) > 0 {
			return []xcontext.QueryTuple{{Query: req.RawQuery, Backend: backends[0]}}
		}
		return nil
	}
	return req.Querys
}

// execute runs fn on every query tuple concurrently.
// The queries use ctx so the cursors stay readable after the return.
func (scatter *Scatter) execute(ctx context.Context, req *xcontext.RequestContext, fn func(i int, b Backend, query string) error) (int, error) {
	log := scatter.log
	tuples := scatter.tuples(req)
	backends := make([]Backend, len(tuples))
	for i, t := range tuples {
		b, err := scatter.Backend(t.Backend)
		if err != nil {
			return 0, err
		}
		backends[i] = b
	}

	var g errgroup.Group
	if scatter.maxConcurrency > 0 {
		g.SetLimit(scatter.maxConcurrency)
	}
	for i := range tuples {
		i := i
		g.Go(func() error {
			if err := scatter.throttle.Wait(ctx); err != nil {
				return err
			}

			t := tuples[i]
			done := scatter.queryz.Begin(t)
			defer done()

			start := time.Now()
			err := fn(i, backends[i], t.Query)
			monitor.ShardQueryObserve(t.Backend, start, err)
			if err != nil {
				log.Error("scatter.execute.on[%s].query[%s].error:%+v", t.Backend, t.Query, err)
				return err
			}
			return nil
		})
	}
	return len(tuples), g.Wait()
}

// Query runs the selects of the request, the results keep the order of
// the query tuples. Either every result is returned or none.
func (scatter *Scatter) Query(ctx context.Context, req *xcontext.RequestContext) (*xcontext.ResultContext, error) {
	var mu sync.Mutex
	opened := make(map[int]merger.QueryResult)
	n, err := scatter.execute(ctx, req, func(i int, b Backend, query string) error {
		r, err := b.Query(ctx, query)
		if err != nil {
			return err
		}
		mu.Lock()
		opened[i] = r
		mu.Unlock()
		return nil
	})
	if err != nil {
		for _, r := range opened {
			r.Close()
		}
		return nil, err
	}

	res := xcontext.NewResultContext()
	res.Results = make([]merger.QueryResult, n)
	for i := range res.Results {
		res.Results[i] = opened[i]
	}
	return res, nil
}

// Exec runs the dmls of the request and sums the rows affected.
func (scatter *Scatter) Exec(ctx context.Context, req *xcontext.RequestContext) (*xcontext.ResultContext, error) {
	var mu sync.Mutex
	res := xcontext.NewResultContext()
	_, err := scatter.execute(ctx, req, func(i int, b Backend, query string) error {
		affected, insertID, err := b.Exec(ctx, query)
		if err != nil {
			return err
		}
		mu.Lock()
		res.RowsAffected += affected
		if insertID > res.InsertID {
			res.InsertID = insertID
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
