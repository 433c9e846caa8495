/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xbase

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/xelabs/go-mysqlstack/xlog"
)

// NewStdLog creates a logger writes to stdout with the level name,
// such as "debug", "info", "warning", "error".
func NewStdLog(level string) *xlog.Log {
	l := xlog.NewStdLog(xlog.Level(xlog.INFO))
	l.SetLevel(levelName(level))
	return l
}

// NewFileLog creates a logger appends to the file.
func NewFileLog(file string, level string) (*xlog.Log, error) {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := xlog.NewXLog(f, xlog.Level(xlog.INFO))
	l.SetLevel(levelName(level))
	return l, nil
}

// NewNullLog creates a logger discards everything below panic.
func NewNullLog() *xlog.Log {
	return xlog.NewXLog(ioutil.Discard, xlog.Level(xlog.PANIC))
}

// levelName maps the config level to the xlog one, "warn" is kept as an alias.
func levelName(level string) string {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "WARN" {
		return "WARNING"
	}
	return level
}
