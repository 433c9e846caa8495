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
	"database/sql"
	"time"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/merger"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	maxIdleTime = 20 * time.Second
	dialTimeout = 5 * time.Second
)

// Pool tuple.
type Pool struct {
	log  *xlog.Log
	conf *config.BackendConfig
	db   *sql.DB
}

// DSN returns the go-sql-driver dsn of the backend.
func DSN(conf *config.BackendConfig) string {
	dsn := mysql.NewConfig()
	dsn.User = conf.User
	dsn.Passwd = conf.Password
	dsn.Net = "tcp"
	dsn.Addr = conf.Address
	dsn.DBName = conf.DBName
	dsn.Timeout = dialTimeout
	if conf.Charset != "" {
		dsn.Params = map[string]string{"charset": conf.Charset}
	}
	return dsn.FormatDSN()
}

// NewPool creates the new Pool, connections are dialed on demand.
func NewPool(log *xlog.Log, conf *config.BackendConfig) (*Pool, error) {
	db, err := sql.Open("mysql", DSN(conf))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if conf.MaxConnections > 0 {
		db.SetMaxOpenConns(conf.MaxConnections)
		db.SetMaxIdleConns(conf.MaxConnections)
	}
	db.SetConnMaxIdleTime(maxIdleTime)
	return &Pool{
		log:  log,
		conf: conf,
		db:   db,
	}, nil
}

// Name returns the backend name.
func (p *Pool) Name() string {
	return p.conf.Name
}

// Config returns the backend config.
func (p *Pool) Config() *config.BackendConfig {
	return p.conf
}

// Query implements Backend.
func (p *Pool) Query(ctx context.Context, query string) (merger.QueryResult, error) {
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		p.log.Error("pool[%s].query[%s].error:%v", p.conf.Address, query, err)
		return nil, errors.WithStack(err)
	}
	r, err := NewRows(rows)
	if err != nil {
		rows.Close()
		return nil, err
	}
	return r, nil
}

// Exec implements Backend.
func (p *Pool) Exec(ctx context.Context, query string) (uint64, uint64, error) {
	res, err := p.db.ExecContext(ctx, query)
	if err != nil {
		p.log.Error("pool[%s].exec[%s].error:%v", p.conf.Address, query, err)
		return 0, 0, errors.WithStack(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	insertID, err := res.LastInsertId()
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	return uint64(affected), uint64(insertID), nil
}

// Ping checks the backend is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	return errors.WithStack(p.db.PingContext(ctx))
}

// Stats returns the connection stats of the pool.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// Close used to close the pool.
func (p *Pool) Close() error {
	return errors.WithStack(p.db.Close())
}
