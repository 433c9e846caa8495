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
	"sync"
	"testing"
	"time"

	"github.com/radondb/shardcore/executor"
	"github.com/radondb/shardcore/fakedb"
	"github.com/radondb/shardcore/proxy"
	"github.com/radondb/shardcore/xbase"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

func TestCtlV1Queryz(t *testing.T) {
	log := xbase.NewNullLog()
	fakedbs, proxy, cleanup := proxy.MockProxy(log)
	defer cleanup()

	fakedbs.AddQueryDelay("select * from t_order_2 where id = 3", fakedb.Result1, 1000)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		node, err := sqlparser.Parse("select * from t_order where id = 3")
		assert.Nil(t, err)
		_, err = proxy.Execute(context.Background(), executor.MockDatabase, node, nil)
		assert.Nil(t, err)
	}()
	time.Sleep(200 * time.Millisecond)

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Get("/v1/debug/queryz/:limit", QueryzHandler(log, proxy)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("GET", "http://localhost/v1/debug/queryz/10", nil))
		recorded.CodeIs(200)
		body := recorded.Recorder.Body.String()
		assert.Contains(t, body, "select * from t_order_2 where id = 3")
		assert.Contains(t, body, "backend2")
	}

	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("GET", "http://localhost/v1/debug/queryz/0", nil))
		recorded.CodeIs(200)
		assert.NotContains(t, recorded.Recorder.Body.String(), "t_order_2")
	}
	wg.Wait()
}
