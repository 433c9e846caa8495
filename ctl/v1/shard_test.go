/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"encoding/json"
	"testing"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/executor"
	"github.com/radondb/shardcore/proxy"
	"github.com/radondb/shardcore/xbase"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
)

func TestCtlV1Shardz(t *testing.T) {
	log := xbase.NewNullLog()
	_, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Get("/v1/shard/shardz", ShardzHandler(log, proxy)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("GET", "http://localhost/v1/shard/shardz", nil))
	recorded.CodeIs(200)
	body := recorded.Recorder.Body.String()
	assert.Contains(t, body, "t_order_1")
	assert.Contains(t, body, "sbtest")
}

func TestCtlV1ShardAdd(t *testing.T) {
	log := xbase.NewNullLog()
	_, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Post("/v1/shard/add", ShardAddHandler(log, proxy)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	tests := []struct {
		params *shardAddParams
		code   int
		parts  int
	}{
		// 2 partitions of 512 slots on each backend.
		{&shardAddParams{Database: "sbtest", Table: "t_user", ShardKey: "id", Partitions: 8}, 200, 6},
		{&shardAddParams{Database: "sbtest", Table: "t_global", ShardType: "global"}, 200, 3},
		{&shardAddParams{Database: "sbtest", Table: "t_single", ShardType: "SINGLE", Backends: []string{"backend2"}, AutoInc: "id"}, 200, 1},
		{&shardAddParams{Database: "sbtest", Table: "t_list", ShardType: "LIST", ShardKey: "k", ListValues: map[string]string{"a": "backend0", "b": "backend1"}}, 200, 2},
		// Exists.
		{&shardAddParams{Database: "sbtest", Table: "t_user", ShardKey: "id", Partitions: 8}, 500, 0},
		// Bad partitions.
		{&shardAddParams{Database: "sbtest", Table: "t_bad", ShardKey: "id", Partitions: 7}, 500, 0},
		// Unknown backend.
		{&shardAddParams{Database: "sbtest", Table: "t_bad", ShardType: "SINGLE", Backends: []string{"backend9"}}, 500, 0},
		// Unknown shard type.
		{&shardAddParams{Database: "sbtest", Table: "t_bad", ShardType: "RANGE"}, 500, 0},
	}
	for _, tt := range tests {
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shard/add", tt.params))
		recorded.CodeIs(tt.code)
		if tt.code != 200 {
			continue
		}
		tbl := &config.TableConfig{}
		assert.Nil(t, recorded.DecodeJsonPayload(tbl))
		assert.Equal(t, tt.parts, len(tbl.Partitions))
	}

	conf, err := proxy.Router().TableConfig("sbtest", "t_single")
	assert.Nil(t, err)
	assert.Equal(t, "backend2", conf.Partitions[0].Backend)
	assert.Equal(t, "id", conf.AutoIncrement.Column)
	assert.Equal(t, 5, len(proxy.Config().Schemas[0].Tables))
}

func TestCtlV1ShardRoute(t *testing.T) {
	log := xbase.NewNullLog()
	_, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Post("/v1/shard/route", ShardRouteHandler(log, proxy)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	type explain struct {
		Querys []struct {
			Query   string
			Backend string
		} `json:"querys"`
	}
	route := func(p *shardRouteParams) *explain {
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shard/route", p))
		recorded.CodeIs(200)
		rsp := struct{ Msg string }{}
		assert.Nil(t, recorded.DecodeJsonPayload(&rsp))
		exp := &explain{}
		assert.Nil(t, json.Unmarshal([]byte(rsp.Msg), exp))
		return exp
	}

	// One value.
	{
		exp := route(&shardRouteParams{Database: executor.MockDatabase, Table: "t_order", Values: []string{"2"}})
		assert.Equal(t, 1, len(exp.Querys))
		assert.Equal(t, "select * from t_order_1 where id in (2)", exp.Querys[0].Query)
		assert.Equal(t, "backend1", exp.Querys[0].Backend)
	}

	// The whole table.
	{
		exp := route(&shardRouteParams{Database: executor.MockDatabase, Table: "t_order"})
		assert.Equal(t, 3, len(exp.Querys))
	}

	// Unknown table.
	{
		p := &shardRouteParams{Database: executor.MockDatabase, Table: "t_none", Values: []string{"1"}}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shard/route", p))
		recorded.CodeIs(500)
	}
}
