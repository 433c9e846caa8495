/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xcontext

import (
	"github.com/radondb/shardcore/merger"
)

// RequestMode tells the scatter where the request goes.
type RequestMode int

const (
	// ReqNormal sends every query tuple to its own backend.
	ReqNormal RequestMode = iota

	// ReqScatter sends RawQuery to all the backends.
	ReqScatter

	// ReqSingle sends RawQuery to the first backend.
	ReqSingle
)

var modeNames = [...]string{
	ReqNormal:  "normal",
	ReqScatter: "scatter",
	ReqSingle:  "single",
}

// String returns the mode name.
func (m RequestMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// QueryTuple is one statement for one segment.
type QueryTuple struct {
	Query   string
	Backend string

	// Range is the hash range or the list value of the segment.
	Range string
}

// QueryTuples is the fan-out of a request.
type QueryTuples []QueryTuple

// Backends returns the distinct backends of the tuples, in the first seen order.
func (q QueryTuples) Backends() []string {
	seen := make(map[string]struct{}, len(q))
	var res []string
	for _, t := range q {
		if _, ok := seen[t.Backend]; !ok {
			seen[t.Backend] = struct{}{}
			res = append(res, t.Backend)
		}
	}
	return res
}

// RequestContext is what the executor hands to the scatter.
type RequestContext struct {
	RawQuery string
	Mode     RequestMode
	Querys   QueryTuples
}

// NewRequestContext creates a ReqNormal request.
func NewRequestContext() *RequestContext {
	return &RequestContext{}
}

// ResultContext is what the scatter hands back.
type ResultContext struct {
	// select only, in the order of the query tuples
	Results []merger.QueryResult

	RowsAffected uint64
	InsertID     uint64
}

// NewResultContext returns the result context.
func NewResultContext() *ResultContext {
	return &ResultContext{}
}
