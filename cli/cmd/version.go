/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/radondb/shardcore/build"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build info of shardcli",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := build.GetInfo()
			if !asJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "shardcli:[%v]\n", info)
				return nil
			}
			bout, err := json.MarshalIndent(info, "", "\t")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(bout))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the build info as json")
	return cmd
}
