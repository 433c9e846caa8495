/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	webMonitorURL = "/metrics"

	queryTotalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_total",
			Help: "Counter of queries.",
		},
		[]string{"command", "result"},
	)

	routeTotalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_total",
			Help: "Counter of routes by the number of segments reached.",
		},
		[]string{"kind"},
	)

	mergeTotalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "merge_total",
			Help: "Counter of merges by strategy.",
		},
		[]string{"strategy"},
	)

	shardQueryTotalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shard_query_total",
			Help: "Counter of the queries sent to the backends.",
		},
		[]string{"backend", "result"},
	)

	shardQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shard_query_duration_seconds",
			Help:    "Latency of the queries sent to the backends.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	backendNum = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backend_number",
			Help: "backend Number",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(queryTotalCounter)
	prometheus.MustRegister(routeTotalCounter)
	prometheus.MustRegister(mergeTotalCounter)
	prometheus.MustRegister(shardQueryTotalCounter)
	prometheus.MustRegister(shardQueryDuration)
	prometheus.MustRegister(backendNum)
}

// Route kinds.
const (
	RouteNone      = "none"
	RouteSingle    = "single"
	RouteMulti     = "multi"
	RouteBroadcast = "broadcast"
)

// Start serves the metrics on the address, empty means disabled.
func Start(log *xlog.Log, addr string) {
	if addr == "" {
		return
	}
	log.Info("[prometheus metrics]:\thttp://%s%s", addr, webMonitorURL)
	mux := http.NewServeMux()
	mux.Handle(webMonitorURL, promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("monitor.listen[%s].error:%v", addr, err)
		}
	}()
}

// QueryTotalCounterInc add 1
func QueryTotalCounterInc(command string, result string) {
	queryTotalCounter.WithLabelValues(command, result).Inc()
}

// RouteTotalCounterInc add 1 to the route kind of the segments count.
func RouteTotalCounterInc(segments int, broadcast bool) {
	kind := RouteMulti
	switch {
	case segments == 0:
		kind = RouteNone
	case broadcast:
		kind = RouteBroadcast
	case segments == 1:
		kind = RouteSingle
	}
	routeTotalCounter.WithLabelValues(kind).Inc()
}

// MergeTotalCounterInc add 1
func MergeTotalCounterInc(strategy string) {
	mergeTotalCounter.WithLabelValues(strategy).Inc()
}

// ShardQueryObserve records one backend query.
func ShardQueryObserve(backend string, start time.Time, err error) {
	result := "OK"
	if err != nil {
		result = "Error"
	}
	shardQueryTotalCounter.WithLabelValues(backend, result).Inc()
	shardQueryDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}

// BackendInc add 1
func BackendInc(btype string) {
	backendNum.WithLabelValues(btype).Inc()
}

// BackendDec dec 1
func BackendDec(btype string) {
	backendNum.WithLabelValues(btype).Dec()
}
