/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"fmt"
	"net/http"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// configParams only carries the fields to change.
type configParams struct {
	QueryTimeout  *int  `json:"query-timeout,omitempty"`
	StreamGroupBy *bool `json:"stream-groupby,omitempty"`
	MaxMemoryRows *int  `json:"max-memory-rows,omitempty"`
}

func (p *configParams) check() error {
	if p.QueryTimeout != nil && *p.QueryTimeout < 0 {
		return errors.Errorf("api.v1.config.query-timeout[%d].negative", *p.QueryTimeout)
	}
	if p.MaxMemoryRows != nil && *p.MaxMemoryRows < 0 {
		return errors.Errorf("api.v1.config.max-memory-rows[%d].negative", *p.MaxMemoryRows)
	}
	return nil
}

// ConfigHandler sets the fields present in the body and flushes the config.
func ConfigHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		p := configParams{}
		if err := r.DecodeJsonPayload(&p); err != nil {
			log.Error("api.v1.config.error:%+v", err)
			rest.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := p.check(); err != nil {
			rest.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Warning("api.v1.config[from:%v].body:%+v", r.RemoteAddr, p)

		if p.QueryTimeout != nil {
			proxy.SetQueryTimeout(*p.QueryTimeout)
		}
		if p.StreamGroupBy != nil {
			proxy.SetStreamGroupBy(*p.StreamGroupBy)
		}
		if p.MaxMemoryRows != nil {
			proxy.SetMaxMemoryRows(*p.MaxMemoryRows)
		}
		flushConfig(log, proxy, w)
	}
}

// ConfigzHandler returns the runtime config, the backends and schemas
// have their own endpoints.
func ConfigzHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	type configz struct {
		Proxy   *config.ProxyConfig   `json:"proxy"`
		Router  *config.RouterConfig  `json:"router"`
		Merge   *config.MergeConfig   `json:"merge"`
		Log     *config.LogConfig     `json:"log"`
		Monitor *config.MonitorConfig `json:"monitor"`
	}
	return func(w rest.ResponseWriter, r *rest.Request) {
		conf := proxy.Config()
		w.WriteJson(&configz{
			Proxy:   conf.Proxy,
			Router:  conf.Router,
			Merge:   conf.Merge,
			Log:     conf.Log,
			Monitor: conf.Monitor,
		})
	}
}

type throttleParams struct {
	Limits int `json:"limits"`
}

// ThrottleHandler sets the shard queries per second, 0 for no limit.
func ThrottleHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		p := throttleParams{}
		if err := r.DecodeJsonPayload(&p); err != nil {
			log.Error("api.v1.throttle.error:%+v", err)
			rest.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if p.Limits < 0 {
			rest.Error(w, fmt.Sprintf("api.v1.throttle.limits[%d].negative", p.Limits), http.StatusBadRequest)
			return
		}
		log.Warning("api.v1.throttle[from:%v].body:%+v", r.RemoteAddr, p)
		proxy.SetThrottle(p.Limits)
	}
}

// RestAPIAddressHandler returns the address the admin api listens on.
func RestAPIAddressHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	type address struct {
		Addr string `json:"address"`
	}
	return func(w rest.ResponseWriter, r *rest.Request) {
		w.WriteJson(&address{Addr: proxy.PeerAddress()})
	}
}
