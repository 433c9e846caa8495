/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXContextBackends(t *testing.T) {
	querys := QueryTuples{
		{Query: "select 1", Backend: "b1"},
		{Query: "select 2", Backend: "b0"},
		{Query: "select 3", Backend: "b1"},
	}
	assert.Equal(t, []string{"b1", "b0"}, querys.Backends())
	assert.Nil(t, QueryTuples(nil).Backends())
}

func TestXContextMode(t *testing.T) {
	req := NewRequestContext()
	assert.Equal(t, ReqNormal, req.Mode)
	assert.Equal(t, "normal", req.Mode.String())
	assert.Equal(t, "scatter", ReqScatter.String())
	assert.Equal(t, "single", ReqSingle.String())
	assert.Equal(t, "unknown", RequestMode(9).String())
	assert.Equal(t, 0, len(NewResultContext().Results))
}
