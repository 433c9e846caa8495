/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"database/sql"

	"github.com/radondb/shardcore/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

type poolz struct {
	Open    int   `json:"open"`
	InUse   int   `json:"in-use"`
	Idle    int   `json:"idle"`
	WaitNum int64 `json:"wait-count"`
}

type backendz struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	User           string `json:"user"`
	Database       string `json:"database"`
	MaxConnections int    `json:"max-connections"`
	Pool           *poolz `json:"pool,omitempty"`
}

// BackendzHandler lists the backends without the passwords, with the
// connection stats of the MySQL pools.
func BackendzHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		scatter := proxy.Scatter()
		rsp := []backendz{}
		for _, conf := range scatter.BackendConfigs() {
			z := backendz{
				Name:           conf.Name,
				Address:        conf.Address,
				User:           conf.User,
				Database:       conf.DBName,
				MaxConnections: conf.MaxConnections,
			}
			b, err := scatter.Backend(conf.Name)
			if err != nil {
				log.Warning("api.v1.backendz[%s].error:%v", conf.Name, err)
			} else if s, ok := b.(interface{ Stats() sql.DBStats }); ok {
				st := s.Stats()
				z.Pool = &poolz{Open: st.OpenConnections, InUse: st.InUse, Idle: st.Idle, WaitNum: st.WaitCount}
			}
			rsp = append(rsp, z)
		}
		w.WriteJson(rsp)
	}
}
