/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package main

import (
	"bytes"
	"testing"

	"github.com/radondb/shardcore/cli/cmd"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"version", "compute", "shard", "throttle"})

	old := cmd.APIAddress
	defer func() { cmd.APIAddress = old }()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"--api-address", "", "version"})
	err := root.Execute()
	assert.Equal(t, "shardcli.api-address.can.not.be.empty", err.Error())
}
