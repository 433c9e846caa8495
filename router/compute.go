/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"fmt"
	"sort"

	"github.com/radondb/shardcore/config"

	"github.com/pkg/errors"
)

var partitionNums = []int{8, 16, 32, 64}

// checkTable checks the table name, and the shard key when keyed.
func checkTable(table, shardkey string, keyed bool) error {
	if table == "" {
		return errors.New("table.cant.be.null")
	}
	if keyed && shardkey == "" {
		return errors.New("shard.key.cant.be.null")
	}
	return nil
}

func checkBackends(backends []string) error {
	if len(backends) == 0 {
		return errors.New("router.compute.backends.is.null")
	}
	return nil
}

func segmentTable(table string, i int) string {
	return fmt.Sprintf("%s_%04d", table, i)
}

// slotLayout cuts [0, slots) into one equal share per backend, and every
// share into tables of blocks slots. The last table of a share takes the
// remainder, the last share ends at slots.
func slotLayout(slots, blocks, backends int) [][][2]int {
	perShard := slots / backends
	tables := perShard / blocks
	if tables == 0 {
		tables = 1
	}

	layout := make([][][2]int, backends)
	for s := range layout {
		base := s * perShard
		for i := 0; i < tables; i++ {
			lo, hi := base+i*blocks, base+(i+1)*blocks
			if i == tables-1 {
				hi = base + perShard
				if s == backends-1 {
					hi = slots
				}
			}
			layout[s] = append(layout[s], [2]int{lo, hi})
		}
	}
	return layout
}

// HashUniform spreads the hash slots of the table evenly over the
// backends, in backend name order.
// A zero partitionNum keeps the configured blocks.
func (r *Router) HashUniform(table, shardkey string, backends []string, partitionNum int) (*config.TableConfig, error) {
	if err := checkTable(table, shardkey, true); err != nil {
		return nil, err
	}

	slots, blocks := r.conf.Slots, r.conf.Blocks
	if partitionNum != 0 {
		i := sort.SearchInts(partitionNums, partitionNum)
		if i == len(partitionNums) || partitionNums[i] != partitionNum {
			return nil, errors.New("number.of.partitions.must.be.one.of.the.list.[8, 16, 32, 64]")
		}
		blocks = slots / partitionNum
	}
	if err := checkBackends(backends); err != nil {
		return nil, err
	}
	if len(backends) >= slots {
		return nil, errors.Errorf("router.compute.backends[%d].too.many:[max:%d]", len(backends), slots)
	}

	backends = append([]string{}, backends...)
	sort.Strings(backends)
	conf := &config.TableConfig{
		Name:      table,
		Slots:     slots,
		Blocks:    blocks,
		ShardKey:  shardkey,
		ShardType: string(MethodTypeHash),
	}
	for s, ranges := range slotLayout(slots, blocks, len(backends)) {
		for _, rg := range ranges {
			conf.Partitions = append(conf.Partitions, &config.PartitionConfig{
				Table:   segmentTable(table, len(conf.Partitions)),
				Segment: fmt.Sprintf("%d-%d", rg[0], rg[1]),
				Backend: backends[s],
			})
		}
	}
	return conf, nil
}

// GlobalUniform puts a copy of the table on every backend.
func (r *Router) GlobalUniform(table string, backends []string) (*config.TableConfig, error) {
	if err := checkTable(table, "", false); err != nil {
		return nil, err
	}
	if err := checkBackends(backends); err != nil {
		return nil, err
	}
	conf := &config.TableConfig{
		Name:       table,
		ShardType:  string(MethodTypeGlobal),
		Partitions: make([]*config.PartitionConfig, 0, len(backends)),
	}
	for _, b := range backends {
		conf.Partitions = append(conf.Partitions, &config.PartitionConfig{Table: table, Backend: b})
	}
	return conf, nil
}

// SingleUniform puts the table on the first backend.
func (r *Router) SingleUniform(table string, backends []string) (*config.TableConfig, error) {
	if err := checkTable(table, "", false); err != nil {
		return nil, err
	}
	if err := checkBackends(backends); err != nil {
		return nil, err
	}
	return &config.TableConfig{
		Name:       table,
		ShardType:  string(MethodTypeSingle),
		Partitions: []*config.PartitionConfig{{Table: table, Backend: backends[0]}},
	}, nil
}

// ListUniform makes one segment per list value, listValues maps each
// value to its backend. The segments are numbered in value order.
func (r *Router) ListUniform(table string, shardkey string, listValues map[string]string) (*config.TableConfig, error) {
	if err := checkTable(table, shardkey, true); err != nil {
		return nil, err
	}
	if len(listValues) == 0 {
		return nil, errors.New("router.compute.partition.list.is.null")
	}

	values := make([]string, 0, len(listValues))
	for value := range listValues {
		values = append(values, value)
	}
	sort.Strings(values)

	conf := &config.TableConfig{
		Name:       table,
		ShardType:  string(MethodTypeList),
		ShardKey:   shardkey,
		Partitions: make([]*config.PartitionConfig, 0, len(values)),
	}
	for i, value := range values {
		conf.Partitions = append(conf.Partitions, &config.PartitionConfig{
			Table:     segmentTable(table, i),
			Backend:   listValues[value],
			ListValue: value,
		})
	}
	return conf, nil
}
