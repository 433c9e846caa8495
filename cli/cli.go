/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package main

import (
	"os"

	"github.com/radondb/shardcore/cli/cmd"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "shardcli",
		Short:        "A command line client for the shardd admin api",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if cmd.APIAddress == "" {
				return errors.New("shardcli.api-address.can.not.be.empty")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cmd.APIAddress, "api-address", cmd.APIAddress, "the rest api address of shardd")
	root.AddCommand(
		cmd.NewVersionCommand(),
		cmd.NewComputeCommand(),
		cmd.NewShardCommand(),
		cmd.NewThrottleCommand(),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
