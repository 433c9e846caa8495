/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"sort"
)

// RDatabase tuple.
type RDatabase struct {
	DB     string
	Tables []*Table
}

// Rule tuple.
type Rule struct {
	Schemas []RDatabase
}

// Rules returns router's schemas, sorted by name.
func (r *Router) Rules() *Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule := &Rule{}

	for key, schema := range r.Schemas {
		rdb := RDatabase{DB: key}
		for _, v := range schema.Tables {
			rdb.Tables = append(rdb.Tables, v)
		}
		sort.Slice(rdb.Tables, func(i, j int) bool {
			return rdb.Tables[i].Name < rdb.Tables[j].Name
		})
		rule.Schemas = append(rule.Schemas, rdb)
	}
	sort.Slice(rule.Schemas, func(i, j int) bool {
		return rule.Schemas[i].DB < rule.Schemas[j].DB
	})
	return rule
}
