/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package sharding

import (
	"fmt"
	"strings"
)

// Column is the identity of a candidate sharding column.
// Names are case-insensitive and stored in lower case.
type Column struct {
	Name  string
	Table string
}

// NewColumn creates the Column.
func NewColumn(name, table string) Column {
	return Column{
		Name:  strings.ToLower(name),
		Table: strings.ToLower(table),
	}
}

// String returns table.name.
func (c Column) String() string {
	return fmt.Sprintf("%s.%s", c.Table, c.Name)
}
