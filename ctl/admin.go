/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package ctl

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/radondb/shardcore/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

const shutdownTimeout = 5 * time.Second

// Admin serves the rest api of the proxy.
type Admin struct {
	log    *xlog.Log
	proxy  *proxy.Proxy
	server *http.Server
	done   chan struct{}
}

// NewAdmin creates the admin.
func NewAdmin(log *xlog.Log, proxy *proxy.Proxy) *Admin {
	return &Admin{
		log:   log,
		proxy: proxy,
	}
}

// Handler returns the handler of the api.
func (admin *Admin) Handler() (http.Handler, error) {
	router, err := admin.NewRouter()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	api := rest.NewApi()
	api.SetApp(router)
	return api.MakeHandler(), nil
}

// Start listens on the peer address of the proxy and serves in the background.
func (admin *Admin) Start() error {
	log := admin.log
	addr := admin.proxy.PeerAddress()

	handler, err := admin.Handler()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WithStack(err)
	}
	admin.server = &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	admin.done = make(chan struct{})

	go func() {
		defer close(admin.done)
		log.Info("http.server.start[%v]...", addr)
		if err := admin.server.Serve(ln); err != http.ErrServerClosed {
			log.Error("http.server[%v].serve.error:%+v", addr, err)
		}
	}()
	return nil
}

// Stop shuts the server down, the requests in flight have shutdownTimeout to finish.
func (admin *Admin) Stop() {
	log := admin.log
	if admin.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := admin.server.Shutdown(ctx); err != nil {
		log.Warning("http.server.shutdown.error:%+v", err)
	}
	<-admin.done
	log.Info("http.server.gracefully.stop")
}
