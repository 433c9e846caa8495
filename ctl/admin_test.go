/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package ctl

import (
	"net/http"
	"testing"

	"github.com/radondb/shardcore/merger"
	"github.com/radondb/shardcore/proxy"
	"github.com/radondb/shardcore/xbase"

	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
)

func TestAdminHandler(t *testing.T) {
	log := xbase.NewNullLog()
	fakedbs, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()
	fakedbs.AddQuery("select 1", merger.MockResult([]string{"1"}, []interface{}{1}))

	admin := NewAdmin(log, proxy)
	handler, err := admin.Handler()
	assert.Nil(t, err)

	tests := []struct {
		method string
		url    string
		code   int
	}{
		{"GET", "/v1/shardcore/ping", 200},
		{"GET", "/v1/shard/shardz", 200},
		{"GET", "/v1/debug/queryz/10", 200},
		{"GET", "/v1/debug/configz", 200},
		{"GET", "/v1/debug/backendz", 200},
		{"GET", "/v1/shardcore/restapiaddress", 200},
		{"POST", "/v1/shardcore/ping", 405},
		{"GET", "/v1/none", 404},
	}
	for _, tt := range tests {
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest(tt.method, "http://localhost"+tt.url, nil))
		recorded.CodeIs(tt.code)
	}
}

func TestAdminStartStop(t *testing.T) {
	log := xbase.NewNullLog()
	_, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	admin := NewAdmin(log, proxy)
	assert.Nil(t, admin.Start())
	defer admin.Stop()

	resp, err := http.Get("http://" + proxy.PeerAddress() + "/v1/shardcore/restapiaddress")
	assert.Nil(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()

	// The address is taken.
	other := NewAdmin(log, proxy)
	assert.NotNil(t, other.Start())
	other.Stop()
}
