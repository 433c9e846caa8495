/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xbase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
)

// ArgIndex returns the 0-based position of a '?' marker.
// The tokenizer names the markers ':v1', ':v2'... in order.
func ArgIndex(val *sqlparser.SQLVal) (int, bool) {
	if val == nil || val.Type != sqlparser.ValArg {
		return 0, false
	}
	name := string(val.Val)
	if !strings.HasPrefix(name, ":v") {
		return 0, false
	}
	n, err := strconv.Atoi(name[2:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// RewriteFormatter returns a formatter that renames the tables in the
// map (keys lowered) and inlines the bound parameters in place of the
// '?' markers.
func RewriteFormatter(tables map[string]string, params []interface{}) sqlparser.NodeFormatter {
	return func(buf *sqlparser.TrackedBuffer, node sqlparser.SQLNode) {
		switch node := node.(type) {
		case sqlparser.TableName:
			if name, ok := tables[strings.ToLower(node.Name.String())]; ok {
				node.Name = sqlparser.NewTableIdent(name)
			}
			node.Format(buf)
			return
		case *sqlparser.SQLVal:
			if idx, ok := ArgIndex(node); ok && idx < len(params) {
				EncodeValue(buf, params[idx])
				return
			}
		}
		node.Format(buf)
	}
}

// EncodeValue writes the SQL literal of a go value.
func EncodeValue(buf *sqlparser.TrackedBuffer, v interface{}) {
	switch x := v.(type) {
	case bool:
		if x {
			v = int64(1)
		} else {
			v = int64(0)
		}
	case time.Time, sqltypes.Value:
	case fmt.Stringer:
		v = x.String()
	}
	val, err := sqltypes.BuildValue(v)
	if err != nil {
		val = sqltypes.MakeTrusted(sqltypes.VarChar, []byte(fmt.Sprintf("%v", v)))
	}
	val.EncodeSQL(buf)
}
