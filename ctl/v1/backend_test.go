/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"testing"

	"github.com/radondb/shardcore/proxy"
	"github.com/radondb/shardcore/xbase"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
)

func TestCtlV1BackendAdd(t *testing.T) {
	log := xbase.NewNullLog()
	_, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	// server
	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Post("/v1/shardcore/backend", AddBackendHandler(log, proxy)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	// 200.
	{
		p := &backendParams{
			Name:           "backend6",
			Address:        "192.168.0.1:3306",
			User:           "mock",
			Password:       "pwd",
			MaxConnections: 1024,
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardcore/backend", p))
		recorded.CodeIs(200)
		assert.Equal(t, []string{"backend0", "backend1", "backend2", "backend6"}, proxy.Scatter().Backends())
	}

	// Duplicate.
	{
		p := &backendParams{Name: "backend6", Address: "192.168.0.2:3306"}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardcore/backend", p))
		recorded.CodeIs(500)
	}

	// 400.
	{
		p := &backendParams{Name: " ", Address: "192.168.0.3:3306"}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardcore/backend", p))
		recorded.CodeIs(400)
		assert.Equal(t, 4, len(proxy.Scatter().Backends()))
	}

	// 405.
	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("PUT", "http://localhost/v1/shardcore/backend", &backendParams{}))
		recorded.CodeIs(405)
	}

	// 500.
	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardcore/backend", nil))
		recorded.CodeIs(500)
	}
}

func TestCtlV1BackendRemove(t *testing.T) {
	log := xbase.NewNullLog()
	_, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Post("/v1/shardcore/backend", AddBackendHandler(log, proxy)),
		rest.Delete("/v1/shardcore/backend/:name", RemoveBackendHandler(log, proxy)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	{
		p := &backendParams{Name: "backend6", Address: "192.168.0.1:3306"}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardcore/backend", p))
		recorded.CodeIs(200)
	}

	// 200.
	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("DELETE", "http://localhost/v1/shardcore/backend/backend6", nil))
		recorded.CodeIs(200)
		assert.Equal(t, 3, len(proxy.Scatter().Backends()))
	}

	// The partitions of t_order are on backend1.
	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("DELETE", "http://localhost/v1/shardcore/backend/backend1", nil))
		recorded.CodeIs(500)
	}

	// Not found.
	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("DELETE", "http://localhost/v1/shardcore/backend/backend6", nil))
		recorded.CodeIs(500)
	}
}
