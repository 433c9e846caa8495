/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package config

import (
	"encoding/json"
	"os"

	"github.com/radondb/shardcore/xbase"

	"github.com/pkg/errors"
)

// ProxyConfig tuple.
type ProxyConfig struct {
	// Admin api address.
	PeerAddress string `json:"peer-address"`

	// Max concurrent backend queries, 0 means unlimited.
	MaxConcurrency int `json:"max-concurrency"`
	QueryTimeout   int `json:"query-timeout"`
}

// DefaultProxyConfig returns default proxy config.
func DefaultProxyConfig() *ProxyConfig {
	return &ProxyConfig{
		PeerAddress:    "127.0.0.1:8080",
		MaxConcurrency: 0,
		QueryTimeout:   5 * 60 * 1000, // 5minutes
	}
}

// UnmarshalJSON interface on ProxyConfig.
func (c *ProxyConfig) UnmarshalJSON(b []byte) error {
	type confAlias *ProxyConfig
	conf := confAlias(DefaultProxyConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = ProxyConfig(*conf)
	return nil
}

// MergeConfig tuple.
type MergeConfig struct {
	// Rows a memory group by may hold, 0 means unlimited.
	MaxMemoryRows int `json:"max-memory-rows"`

	// Use the stream group by when the order by matches the group by.
	StreamGroupBy bool `json:"stream-groupby"`

	// String compare of group by and order by keys.
	CaseSensitive bool `json:"case-sensitive"`
}

// DefaultMergeConfig returns default merge config.
func DefaultMergeConfig() *MergeConfig {
	return &MergeConfig{
		MaxMemoryRows: 1024 * 1024,
		StreamGroupBy: true,
	}
}

// UnmarshalJSON interface on MergeConfig.
func (c *MergeConfig) UnmarshalJSON(b []byte) error {
	type confAlias *MergeConfig
	conf := confAlias(DefaultMergeConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = MergeConfig(*conf)
	return nil
}

// LogConfig tuple.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
}

// DefaultLogConfig returns default log config.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level: "ERROR",
	}
}

// UnmarshalJSON interface on LogConfig.
func (c *LogConfig) UnmarshalJSON(b []byte) error {
	type confAlias *LogConfig
	conf := confAlias(DefaultLogConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = LogConfig(*conf)
	return nil
}

// MonitorConfig tuple.
type MonitorConfig struct {
	// Prometheus metrics address, empty means disabled.
	Address string `json:"address"`
}

// DefaultMonitorConfig returns default monitor config.
func DefaultMonitorConfig() *MonitorConfig {
	return &MonitorConfig{
		Address: "127.0.0.1:13380",
	}
}

// UnmarshalJSON interface on MonitorConfig.
func (c *MonitorConfig) UnmarshalJSON(b []byte) error {
	type confAlias *MonitorConfig
	conf := confAlias(DefaultMonitorConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = MonitorConfig(*conf)
	return nil
}

// BackendConfig tuple.
type BackendConfig struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"database"`
	Charset        string `json:"charset"`
	MaxConnections int    `json:"max-connections"`
}

// BackendsConfig tuple.
type BackendsConfig struct {
	Backends []*BackendConfig `json:"backends"`
}

// PartitionConfig tuple.
type PartitionConfig struct {
	Table     string `json:"table"`
	Segment   string `json:"segment"`
	Backend   string `json:"backend"`
	ListValue string `json:"listvalue,omitempty"`
}

// AutoIncrement tuple.
type AutoIncrement struct {
	Column string `json:"column"`
}

// TableConfig tuple.
type TableConfig struct {
	Name          string             `json:"name"`
	Slots         int                `json:"slots-readonly,omitempty"`
	Blocks        int                `json:"blocks-readonly,omitempty"`
	ShardType     string             `json:"shardtype"`
	ShardKey      string             `json:"shardkey"`
	Partitions    []*PartitionConfig `json:"partitions"`
	AutoIncrement *AutoIncrement     `json:"auto-increment,omitempty"`
}

// SchemaConfig tuple.
type SchemaConfig struct {
	DB     string         `json:"database"`
	Tables []*TableConfig `json:"tables"`
}

// RouterConfig tuple.
type RouterConfig struct {
	Slots  int `json:"slots-readonly"`
	Blocks int `json:"blocks-readonly"`
}

// DefaultRouterConfig returns the default router config.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Slots:  4096,
		Blocks: 128,
	}
}

// UnmarshalJSON interface on RouterConfig.
func (c *RouterConfig) UnmarshalJSON(b []byte) error {
	type confAlias *RouterConfig
	conf := confAlias(DefaultRouterConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = RouterConfig(*conf)
	return nil
}

// Config tuple.
type Config struct {
	Proxy    *ProxyConfig    `json:"proxy"`
	Router   *RouterConfig   `json:"router"`
	Merge    *MergeConfig    `json:"merge"`
	Log      *LogConfig      `json:"log"`
	Monitor  *MonitorConfig  `json:"monitor"`
	Backends *BackendsConfig `json:"backends"`
	Schemas  []*SchemaConfig `json:"schemas"`
}

func checkConfig(conf *Config) error {
	if conf.Proxy == nil {
		conf.Proxy = DefaultProxyConfig()
	}

	if conf.Router == nil {
		conf.Router = DefaultRouterConfig()
	}

	if conf.Merge == nil {
		conf.Merge = DefaultMergeConfig()
	}

	if conf.Log == nil {
		conf.Log = DefaultLogConfig()
	}

	if conf.Monitor == nil {
		conf.Monitor = DefaultMonitorConfig()
	}

	if conf.Backends == nil {
		conf.Backends = &BackendsConfig{}
	}

	backends := make(map[string]struct{})
	for _, backend := range conf.Backends.Backends {
		if _, ok := backends[backend.Name]; ok {
			return errors.Errorf("config.backend[%s].duplicate", backend.Name)
		}
		backends[backend.Name] = struct{}{}
	}
	for _, schema := range conf.Schemas {
		for _, table := range schema.Tables {
			for _, part := range table.Partitions {
				if _, ok := backends[part.Backend]; !ok {
					return errors.Errorf("config.table[%s.%s].partition[%s].backend[%s].not.found", schema.DB, table.Name, part.Table, part.Backend)
				}
			}
		}
	}
	return nil
}

// LoadConfig used to load the config from file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	conf := &Config{}
	if err := json.Unmarshal(data, conf); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := checkConfig(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// ReadTableConfig used to read the table config from the data.
func ReadTableConfig(data string) (*TableConfig, error) {
	conf := &TableConfig{}
	if err := json.Unmarshal([]byte(data), conf); err != nil {
		return nil, errors.WithStack(err)
	}
	return conf, nil
}

// WriteConfig used to write the conf to file.
func WriteConfig(path string, conf interface{}) error {
	b, err := json.MarshalIndent(conf, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	return xbase.WriteFile(path, b)
}
