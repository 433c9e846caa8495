/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/radondb/shardcore/proxy"
	"github.com/radondb/shardcore/xcontext"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

const (
	pingQuery   = "select 1"
	pingTimeout = 5 * time.Second
)

type pingStatus struct {
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// PingHandler impl.
func PingHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		pingHandler(log, proxy, w, r)
	}
	return f
}

// pingHandler sends select 1 to each backend and reports them one by one,
// 503 if any of them fails.
func pingHandler(log *xlog.Log, proxy *proxy.Proxy, w rest.ResponseWriter, r *rest.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	scatter := proxy.Scatter()
	failed := false
	rsp := []pingStatus{}
	for _, name := range scatter.Backends() {
		req := xcontext.NewRequestContext()
		req.Querys = []xcontext.QueryTuple{{Query: pingQuery, Backend: name}}

		status := pingStatus{Backend: name}
		res, err := scatter.Query(ctx, req)
		if err != nil {
			log.Error("api.v1.ping.backend[%s].error:%+v", name, err)
			status.Error = err.Error()
			failed = true
		} else {
			for _, qr := range res.Results {
				qr.Close()
			}
		}
		rsp = append(rsp, status)
	}
	if failed {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	w.WriteJson(rsp)
}
