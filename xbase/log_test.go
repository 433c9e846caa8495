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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXbaseLog(t *testing.T) {
	{
		log := NewNullLog()
		log.Error("xbase.null.log[%v]", 1)
	}

	{
		log := NewStdLog("error")
		log.Debug("xbase.std.log.debug.is.dropped")
	}

	{
		file := "/tmp/xbase.log.test"
		defer os.RemoveAll(file)
		log, err := NewFileLog(file, "warn")
		assert.Nil(t, err)
		log.Info("xbase.file.log.info")
		log.Warning("xbase.file.log.warn[%d]", 7)
		log.Close()

		data, err := ioutil.ReadFile(file)
		assert.Nil(t, err)
		assert.False(t, strings.Contains(string(data), "xbase.file.log.info"))
		assert.True(t, strings.Contains(string(data), "xbase.file.log.warn[7]"))
	}

	{
		_, err := NewFileLog("/dev/null/xbase.log.test", "warn")
		assert.NotNil(t, err)
	}
}

func TestXbaseLogLevelName(t *testing.T) {
	assert.Equal(t, "WARNING", levelName("warn"))
	assert.Equal(t, "DEBUG", levelName(" debug"))
	assert.Equal(t, "ERROR", levelName("ERROR"))
}
