/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"net/http"
	"strings"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

type backendParams struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	User           string `json:"user"`
	Password       string `json:"password"`
	Database       string `json:"database"`
	MaxConnections int    `json:"max-connections"`
}

func (p *backendParams) config() *config.BackendConfig {
	return &config.BackendConfig{
		Name:           strings.TrimSpace(p.Name),
		Address:        strings.TrimSpace(p.Address),
		User:           p.User,
		Password:       p.Password,
		DBName:         p.Database,
		Charset:        "utf8",
		MaxConnections: p.MaxConnections,
	}
}

// AddBackendHandler adds a backend and flushes the config.
func AddBackendHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		p := backendParams{}
		if err := r.DecodeJsonPayload(&p); err != nil {
			log.Error("api.v1.add.backend.decode.error:%+v", err)
			rest.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		conf := p.config()
		if conf.Name == "" || conf.Address == "" {
			rest.Error(w, "api.v1.add.backend.name.and.address.are.required", http.StatusBadRequest)
			return
		}
		log.Warning("api.v1.add[from:%v].backend[%v@%v]", r.RemoteAddr, conf.Name, conf.Address)
		if err := proxy.AddBackend(conf); err != nil {
			log.Error("api.v1.add.backend[%v].error:%+v", conf.Name, err)
			rest.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		flushConfig(log, proxy, w)
	}
}

// RemoveBackendHandler removes a backend no table lives on and flushes the config.
func RemoveBackendHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		name := r.PathParam("name")
		log.Warning("api.v1.remove[from:%v].backend[%v]", r.RemoteAddr, name)
		if err := proxy.RemoveBackend(name); err != nil {
			log.Error("api.v1.remove.backend[%v].error:%+v", name, err)
			rest.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		flushConfig(log, proxy, w)
	}
}

func flushConfig(log *xlog.Log, proxy *proxy.Proxy, w rest.ResponseWriter) {
	if err := proxy.FlushConfig(); err != nil {
		log.Error("api.v1.flush.config.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
