/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"strconv"
	"strings"

	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/planner"

	"github.com/pkg/errors"
)

// compareRows orders two rows on the items, NULL is the lowest value.
func compareRows(a, b MemoryRow, items []*planner.OrderItem) (int, error) {
	for _, item := range items {
		cmp, err := datum.Compare(a.Value(item.Index), b.Value(item.Index), item.CaseSensitive)
		if err != nil {
			return 0, errors.Wrapf(err, "merger.can.not.compare.column[%d]", item.Index)
		}
		if cmp == 0 {
			continue
		}
		if item.Direction == planner.DESC {
			cmp = -cmp
		}
		return cmp, nil
	}
	return 0, nil
}

// groupKey returns the GroupByValue of the row, rows with equal group by
// cells share the key.
func groupKey(row MemoryRow, items []*planner.OrderItem) string {
	var b strings.Builder
	for _, item := range items {
		k := datum.Key(row.Value(item.Index), item.CaseSensitive)
		b.WriteString(strconv.Itoa(len(k)))
		b.WriteByte(':')
		b.WriteString(k)
	}
	return b.String()
}
