/*
 * Radon
 *
 * Copyright 2018-2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package plugins

import (
	"github.com/radondb/shardcore/plugins/autoincrement"
	"github.com/radondb/shardcore/router"

	"github.com/xelabs/go-mysqlstack/xlog"
)

type plug interface {
	Init() error
	Close() error
}

type namedPlug struct {
	name string
	plug plug
}

// Plugin holds the plugs of the write path.
type Plugin struct {
	log     *xlog.Log
	router  *router.Router
	plugs   []namedPlug
	autoinc *autoincrement.AutoIncrement
}

// NewPlugin creates the Plugin.
func NewPlugin(log *xlog.Log, router *router.Router) *Plugin {
	return &Plugin{
		log:    log,
		router: router,
	}
}

func (plugin *Plugin) register(name string, p plug) error {
	if err := p.Init(); err != nil {
		plugin.log.Error("plugins.%s.init.error:%+v", name, err)
		return err
	}
	plugin.plugs = append(plugin.plugs, namedPlug{name: name, plug: p})
	return nil
}

// Init inits all the plugs, the ones already up are closed on error.
func (plugin *Plugin) Init() error {
	autoinc := autoincrement.NewAutoIncrement(plugin.log, plugin.router)
	if err := plugin.register("autoincrement", autoinc); err != nil {
		plugin.Close()
		return err
	}
	plugin.autoinc = autoinc
	return nil
}

// Close closes the plugs in reverse order of Init.
func (plugin *Plugin) Close() {
	for i := len(plugin.plugs) - 1; i >= 0; i-- {
		p := plugin.plugs[i]
		if err := p.plug.Close(); err != nil {
			plugin.log.Warning("plugins.%s.close.error:%+v", p.name, err)
		}
	}
	plugin.plugs = nil
	plugin.autoinc = nil
}

// PlugAutoIncrement returns the auto-increment plug, nil before Init.
func (plugin *Plugin) PlugAutoIncrement() autoincrement.Handler {
	if plugin.autoinc == nil {
		return nil
	}
	return plugin.autoinc
}
