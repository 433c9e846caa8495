/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/radondb/shardcore/build"
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/ctl"
	"github.com/radondb/shardcore/monitor"
	"github.com/radondb/shardcore/proxy"
	"github.com/radondb/shardcore/xbase"

	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	flagConf   string
	fcpu       *os.File
	pprofCpuOn = flag.Bool("pcpu", false, "is cpu prof enable, default false")
)

func init() {
	flag.StringVar(&flagConf, "c", "", "shardd config file")
	flag.StringVar(&flagConf, "config", "", "shardd config file")
}

func usage() {
	fmt.Println("Usage: " + os.Args[0] + " [-c|--config] <shardd-config-file>")
}

func startPprof() {
	if *pprofCpuOn {
		cpuFile := "pprof_cpu_" + time.Now().Format(time.RFC3339)
		f, err := os.Create(cpuFile)
		if err != nil {
			fmt.Println("start pprof cpu failed", err)
			os.Exit(1)
		}
		fcpu = f
		pprof.StartCPUProfile(fcpu)
		fmt.Println("[pprof cpu]:\t" + cpuFile)
	}
}

func stopPprof() {
	if *pprofCpuOn {
		pprof.StopCPUProfile()
		fcpu.Close()
	}
}

func newLog(conf *config.LogConfig) (*xlog.Log, error) {
	if conf.File == "" {
		return xbase.NewStdLog(conf.Level), nil
	}
	return xbase.NewFileLog(conf.File, conf.Level)
}

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	build := build.GetInfo()
	fmt.Printf("shardd:[%v]\n", build)

	flag.Usage = func() { usage() }
	flag.Parse()
	if flagConf == "" {
		usage()
		os.Exit(0)
	}

	conf, err := config.LoadConfig(flagConf)
	if err != nil {
		fmt.Printf("shardd.load.config.error[%v]\n", err)
		os.Exit(1)
	}
	log, err := newLog(conf.Log)
	if err != nil {
		fmt.Printf("shardd.create.log.error[%v]\n", err)
		os.Exit(1)
	}

	startPprof()
	defer stopPprof()

	// Monitor.
	monitor.Start(log, conf.Monitor.Address)

	// Proxy.
	proxy := proxy.NewProxy(log, flagConf, conf)
	if err := proxy.Start(); err != nil {
		log.Panic("shardd.proxy.start.error[%+v]", err)
	}

	// Admin portal.
	admin := ctl.NewAdmin(log, proxy)
	if err := admin.Start(); err != nil {
		log.Panic("shardd.admin.start.error[%+v]", err)
	}

	// Handle SIGINT and SIGTERM.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	log.Info("shardd.signal:%+v", <-ch)

	// Stop the proxy and httpserver.
	admin.Stop()
	proxy.Stop()
}
