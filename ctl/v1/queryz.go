/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"strconv"

	"github.com/radondb/shardcore/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// QueryzHandler impl.
func QueryzHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		queryzHandler(log, proxy, w, r)
	}
	return f
}

// queryzHandler lists the shard queries running, oldest first.
// The path limit defaults to 100.
func queryzHandler(log *xlog.Log, proxy *proxy.Proxy, w rest.ResponseWriter, r *rest.Request) {
	limit, err := strconv.Atoi(r.PathParam("limit"))
	if err != nil {
		log.Warning("api.v1.queryz.limit[%s].invalid, use 100", r.PathParam("limit"))
		limit = 100
	}
	w.WriteJson(proxy.Scatter().Queryz().Rows(limit))
}
