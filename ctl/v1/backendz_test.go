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

func TestCtlV1Backendz(t *testing.T) {
	log := xbase.NewNullLog()
	_, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Get("/v1/debug/backendz", BackendzHandler(log, proxy)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("GET", "http://localhost/v1/debug/backendz", nil))
	recorded.CodeIs(200)

	body := recorded.Recorder.Body.String()
	assert.Contains(t, body, "backend2")
	assert.NotContains(t, body, "pwd")

	var rsp []backendz
	assert.Nil(t, recorded.DecodeJsonPayload(&rsp))
	assert.Equal(t, 3, len(rsp))
}
