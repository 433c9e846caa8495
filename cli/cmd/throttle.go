/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package cmd

import (
	"strconv"

	"github.com/radondb/shardcore/xbase"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewThrottleCommand creates the throttle command.
func NewThrottleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "throttle <limits>",
		Short: "set the backend queries per second, 0 means no limit",
		Args:  cobra.ExactArgs(1),
		RunE:  throttleCommandFn,
	}
	return cmd
}

func throttleCommandFn(cmd *cobra.Command, args []string) error {
	limits, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Errorf("shardcli.throttle.limits[%s].invalid", args[0])
	}

	type request struct {
		Limits int `json:"limits"`
	}
	if _, err := checkResponse(xbase.HTTPPut(apiURL("/v1/shardcore/throttle"), &request{Limits: limits})); err != nil {
		log.Error("shardcli.throttle.set[%d].error:%+v", limits, err)
		return err
	}
	return nil
}
