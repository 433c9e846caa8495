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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXbaseWriteFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "shardd.json")

	// Create.
	{
		err := WriteFile(file, []byte(`{"a":1}`))
		assert.Nil(t, err)
		got, err := os.ReadFile(file)
		assert.Nil(t, err)
		assert.Equal(t, `{"a":1}`, string(got))
	}

	// Replace with shorter data, no temporary file left.
	{
		err := WriteFile(file, []byte{0xfd})
		assert.Nil(t, err)
		got, err := os.ReadFile(file)
		assert.Nil(t, err)
		assert.Equal(t, []byte{0xfd}, got)

		entries, err := os.ReadDir(dir)
		assert.Nil(t, err)
		assert.Equal(t, 1, len(entries))
	}

	// Directory does not exist.
	{
		err := WriteFile("/xx/xbase.test", []byte{0xfd})
		assert.NotNil(t, err)
	}
}

func TestXbaseTruncateQuery(t *testing.T) {
	tests := []struct {
		in  string
		max int
		out string
	}{
		{"", 5, ""},
		{"12345", 5, "12345"},
		{"123456", 5, "12345 [TRUNCATED]"},
		{"123456", 0, "123456"},
		// The third byte is inside the second rune.
		{"aéé", 2, "a [TRUNCATED]"},
		{"aéé", 3, "aé [TRUNCATED]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, TruncateQuery(tt.in, tt.max))
	}
}
