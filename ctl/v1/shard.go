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
	"strconv"
	"strings"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// ShardzHandler impl.
func ShardzHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		shardzHandler(log, proxy, w, r)
	}
	return f
}

func shardzHandler(log *xlog.Log, proxy *proxy.Proxy, w rest.ResponseWriter, r *rest.Request) {
	router := proxy.Router()
	rulez := router.Rules()
	w.WriteJson(rulez)
}

type shardAddParams struct {
	Database   string            `json:"database"`
	Table      string            `json:"table"`
	ShardType  string            `json:"shardtype"`
	ShardKey   string            `json:"shardkey"`
	Partitions int               `json:"partitions"`
	Backends   []string          `json:"backends,omitempty"`
	ListValues map[string]string `json:"listvalues,omitempty"`
	AutoInc    string            `json:"auto-increment,omitempty"`
}

// ShardAddHandler impl.
func ShardAddHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		shardAddHandler(log, proxy, w, r)
	}
	return f
}

// shardAddHandler computes the partitions of the table over the backends
// and adds it.
func shardAddHandler(log *xlog.Log, proxy *proxy.Proxy, w rest.ResponseWriter, r *rest.Request) {
	p := shardAddParams{}
	err := r.DecodeJsonPayload(&p)
	if err != nil {
		log.Error("api.v1.shard.add.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Warning("api.v1.shard.add[from:%v].body:%+v", r.RemoteAddr, p)

	tbl, err := computeTable(proxy, &p)
	if err != nil {
		log.Error("api.v1.shard.add.compute.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if p.AutoInc != "" {
		tbl.AutoIncrement = &config.AutoIncrement{Column: p.AutoInc}
	}
	if err := proxy.AddTable(p.Database, tbl); err != nil {
		log.Error("api.v1.shard.add.table[%s.%s].error:%+v", p.Database, p.Table, err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := proxy.FlushConfig(); err != nil {
		log.Error("api.v1.shard.add.flush.config.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteJson(tbl)
}

func computeTable(proxy *proxy.Proxy, p *shardAddParams) (*config.TableConfig, error) {
	router := proxy.Router()
	backends := p.Backends
	if len(backends) == 0 {
		backends = proxy.Scatter().Backends()
	}
	switch strings.ToUpper(p.ShardType) {
	case "", "HASH":
		return router.HashUniform(p.Table, p.ShardKey, backends, p.Partitions)
	case "GLOBAL":
		return router.GlobalUniform(p.Table, backends)
	case "SINGLE":
		return router.SingleUniform(p.Table, backends)
	case "LIST":
		return router.ListUniform(p.Table, p.ShardKey, p.ListValues)
	}
	return nil, errors.Errorf("api.v1.shard.unsupported.shardtype[%s]", p.ShardType)
}

type shardRouteParams struct {
	Database string   `json:"database"`
	Table    string   `json:"table"`
	Values   []string `json:"values,omitempty"`
}

// ShardRouteHandler impl.
func ShardRouteHandler(log *xlog.Log, proxy *proxy.Proxy) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		shardRouteHandler(log, proxy, w, r)
	}
	return f
}

// shardRouteHandler explains a select of the rows whose shard key is one
// of the values, no value means the whole table.
func shardRouteHandler(log *xlog.Log, proxy *proxy.Proxy, w rest.ResponseWriter, r *rest.Request) {
	p := shardRouteParams{}
	err := r.DecodeJsonPayload(&p)
	if err != nil {
		log.Error("api.v1.shard.route.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	node, err := routeSelect(proxy, &p)
	if err != nil {
		log.Error("api.v1.shard.route.table[%s.%s].error:%+v", p.Database, p.Table, err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	explain, err := proxy.Explain(context.Background(), p.Database, node, nil)
	if err != nil {
		log.Error("api.v1.shard.route.explain.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	type resp struct {
		Msg string
	}
	w.WriteJson(&resp{Msg: explain})
}

func routeSelect(proxy *proxy.Proxy, p *shardRouteParams) (*sqlparser.Select, error) {
	node := &sqlparser.Select{
		SelectExprs: sqlparser.SelectExprs{&sqlparser.StarExpr{}},
		From:        sqlparser.TableExprs{&sqlparser.AliasedTableExpr{Expr: sqlparser.TableName{Name: sqlparser.NewTableIdent(p.Table)}}},
	}
	if len(p.Values) == 0 {
		return node, nil
	}
	shardKey, err := proxy.Router().ShardKey(p.Database, p.Table)
	if err != nil {
		return nil, err
	}
	if shardKey == "" {
		return node, nil
	}

	tuple := make(sqlparser.ValTuple, 0, len(p.Values))
	for _, v := range p.Values {
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			tuple = append(tuple, sqlparser.NewIntVal([]byte(v)))
		} else {
			tuple = append(tuple, sqlparser.NewStrVal([]byte(v)))
		}
	}
	node.Where = sqlparser.NewWhere(sqlparser.WhereStr, &sqlparser.ComparisonExpr{
		Operator: sqlparser.InStr,
		Left:     &sqlparser.ColName{Name: sqlparser.NewColIdent(shardKey)},
		Right:    tuple,
	})
	return node, nil
}
