/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package cmd

import (
	"fmt"

	"github.com/radondb/shardcore/xbase"

	"github.com/spf13/cobra"
)

var shardFlags = struct {
	database   string
	table      string
	shardType  string
	shardKey   string
	partitions int
	backends   []string
	autoInc    string
	values     []string
}{}

// NewShardCommand creates the shard command.
func NewShardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shard",
		Short: "shard rules of shardd",
	}
	cmd.PersistentFlags().StringVar(&shardFlags.database, "database", "", "database name")
	cmd.PersistentFlags().StringVar(&shardFlags.table, "table", "", "table name")
	cmd.AddCommand(NewShardzCommand())
	cmd.AddCommand(NewShardAddCommand())
	cmd.AddCommand(NewShardRouteCommand())
	return cmd
}

// NewShardzCommand creates the shardz command.
func NewShardzCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shardz",
		Short: "show the shard rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := checkResponse(xbase.HTTPGet(apiURL("/v1/shard/shardz")))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}
	return cmd
}

// NewShardAddCommand creates the add command.
func NewShardAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a sharded table",
		RunE:  shardAddCommandFn,
	}
	cmd.Flags().StringVar(&shardFlags.shardType, "shardtype", "HASH", "HASH, GLOBAL or SINGLE")
	cmd.Flags().StringVar(&shardFlags.shardKey, "shardkey", "", "shard key column")
	cmd.Flags().IntVar(&shardFlags.partitions, "partitions", 0, "number of hash partitions")
	cmd.Flags().StringSliceVar(&shardFlags.backends, "backends", nil, "backend names, empty means all")
	cmd.Flags().StringVar(&shardFlags.autoInc, "auto-increment", "", "auto increment column")
	return cmd
}

func shardAddCommandFn(cmd *cobra.Command, args []string) error {
	type request struct {
		Database   string   `json:"database"`
		Table      string   `json:"table"`
		ShardType  string   `json:"shardtype"`
		ShardKey   string   `json:"shardkey"`
		Partitions int      `json:"partitions"`
		Backends   []string `json:"backends,omitempty"`
		AutoInc    string   `json:"auto-increment,omitempty"`
	}
	req := &request{
		Database:   shardFlags.database,
		Table:      shardFlags.table,
		ShardType:  shardFlags.shardType,
		ShardKey:   shardFlags.shardKey,
		Partitions: shardFlags.partitions,
		Backends:   shardFlags.backends,
		AutoInc:    shardFlags.autoInc,
	}
	body, err := checkResponse(xbase.HTTPPost(apiURL("/v1/shard/add"), req))
	if err != nil {
		log.Error("shardcli.shard.add[%s.%s].error:%+v", req.Database, req.Table, err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), body)
	return nil
}

// NewShardRouteCommand creates the route command.
func NewShardRouteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "show the partitions and backends the shard key values route to",
		RunE:  shardRouteCommandFn,
	}
	cmd.Flags().StringSliceVar(&shardFlags.values, "values", nil, "shard key values, empty means the whole table")
	return cmd
}

func shardRouteCommandFn(cmd *cobra.Command, args []string) error {
	type request struct {
		Database string   `json:"database"`
		Table    string   `json:"table"`
		Values   []string `json:"values,omitempty"`
	}
	req := &request{
		Database: shardFlags.database,
		Table:    shardFlags.table,
		Values:   shardFlags.values,
	}
	body, err := checkResponse(xbase.HTTPPost(apiURL("/v1/shard/route"), req))
	if err != nil {
		log.Error("shardcli.shard.route[%s.%s].error:%+v", req.Database, req.Table, err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), body)
	return nil
}
