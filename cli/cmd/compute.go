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
	"strings"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/router"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var computeFlags = struct {
	table      string
	shardKey   string
	backends   []string
	partitions int
	values     []string
}{}

// NewComputeCommand creates the compute command, it prints the table config
// of the partitions without a running shardd.
func NewComputeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "compute the partitions of a table over the backends",
	}
	cmd.PersistentFlags().StringVar(&computeFlags.table, "table", "", "table name")
	cmd.PersistentFlags().StringVar(&computeFlags.shardKey, "shardkey", "", "shard key column")
	cmd.PersistentFlags().StringSliceVar(&computeFlags.backends, "backends", nil, "backend names")

	hash := &cobra.Command{
		Use:   "hash",
		Short: "hash partitions, the slots are spread over the backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			return computeCommandFn(cmd, func(r *router.Router) (*config.TableConfig, error) {
				return r.HashUniform(computeFlags.table, computeFlags.shardKey, computeFlags.backends, computeFlags.partitions)
			})
		},
	}
	hash.Flags().IntVar(&computeFlags.partitions, "partitions", 0, "number of partitions, one of 8, 16, 32, 64")

	list := &cobra.Command{
		Use:   "list",
		Short: "list partitions, each value is placed as value:backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return computeCommandFn(cmd, func(r *router.Router) (*config.TableConfig, error) {
				values := make(map[string]string, len(computeFlags.values))
				for _, v := range computeFlags.values {
					kv := strings.SplitN(v, ":", 2)
					if len(kv) != 2 {
						return nil, errors.Errorf("shardcli.compute.list.value[%s].invalid", v)
					}
					values[kv[0]] = kv[1]
				}
				return r.ListUniform(computeFlags.table, computeFlags.shardKey, values)
			})
		},
	}
	list.Flags().StringSliceVar(&computeFlags.values, "values", nil, "value:backend pairs")

	global := &cobra.Command{
		Use:   "global",
		Short: "global table, one copy on each backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return computeCommandFn(cmd, func(r *router.Router) (*config.TableConfig, error) {
				return r.GlobalUniform(computeFlags.table, computeFlags.backends)
			})
		},
	}

	single := &cobra.Command{
		Use:   "single",
		Short: "single table, on the first backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return computeCommandFn(cmd, func(r *router.Router) (*config.TableConfig, error) {
				return r.SingleUniform(computeFlags.table, computeFlags.backends)
			})
		},
	}

	cmd.AddCommand(hash, list, global, single)
	return cmd
}

func computeCommandFn(cmd *cobra.Command, compute func(r *router.Router) (*config.TableConfig, error)) error {
	r := router.NewRouter(log, config.DefaultRouterConfig())
	tbl, err := compute(r)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(tbl, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
