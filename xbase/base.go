/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xbase

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// WriteFile replaces the file with data. The data goes to a temporary file
// in the same directory first, so a reader never sees a half written config.
func WriteFile(file string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".tmp")
	if err != nil {
		return errors.WithStack(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.Rename(tmp.Name(), file))
}

// TruncateQuery cuts the query to at most max bytes on a rune boundary,
// 0 means no limit.
func TruncateQuery(query string, max int) string {
	if max <= 0 || len(query) <= max {
		return query
	}
	end := max
	for end > 0 && !utf8.RuneStart(query[end]) {
		end--
	}
	return query[:end] + " [TRUNCATED]"
}
