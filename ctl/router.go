/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package ctl

import (
	v1 "github.com/radondb/shardcore/ctl/v1"

	"github.com/ant0ine/go-json-rest/rest"
)

// NewRouter creates the new router.
func (admin *Admin) NewRouter() (rest.App, error) {
	log := admin.log
	proxy := admin.proxy

	return rest.MakeRouter(
		// shardcore
		rest.Get("/v1/shardcore/ping", v1.PingHandler(log, proxy)),
		rest.Put("/v1/shardcore/config", v1.ConfigHandler(log, proxy)),
		rest.Put("/v1/shardcore/throttle", v1.ThrottleHandler(log, proxy)),
		rest.Post("/v1/shardcore/backend", v1.AddBackendHandler(log, proxy)),
		rest.Delete("/v1/shardcore/backend/:name", v1.RemoveBackendHandler(log, proxy)),
		rest.Get("/v1/shardcore/restapiaddress", v1.RestAPIAddressHandler(log, proxy)),

		// shard
		rest.Get("/v1/shard/shardz", v1.ShardzHandler(log, proxy)),
		rest.Post("/v1/shard/add", v1.ShardAddHandler(log, proxy)),
		rest.Post("/v1/shard/route", v1.ShardRouteHandler(log, proxy)),

		// debug
		rest.Get("/v1/debug/queryz/:limit", v1.QueryzHandler(log, proxy)),
		rest.Get("/v1/debug/configz", v1.ConfigzHandler(log, proxy)),
		rest.Get("/v1/debug/backendz", v1.BackendzHandler(log, proxy)),
	)
}
