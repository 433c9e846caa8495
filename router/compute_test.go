/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"testing"

	"github.com/radondb/shardcore/xbase"

	"github.com/stretchr/testify/assert"
)

func TestRouterComputeHash(t *testing.T) {
	log := xbase.NewNullLog()
	router := MockNewRouter(log)

	{
		conf, err := router.HashUniform("t", "id", []string{"backend2", "backend1"}, 0)
		assert.Nil(t, err)
		assert.Equal(t, 32, len(conf.Partitions))
		assert.Equal(t, "t_0000", conf.Partitions[0].Table)
		assert.Equal(t, "0-128", conf.Partitions[0].Segment)
		assert.Equal(t, "backend1", conf.Partitions[0].Backend)
		assert.Equal(t, "t_0031", conf.Partitions[31].Table)
		assert.Equal(t, "3968-4096", conf.Partitions[31].Segment)
		assert.Equal(t, "backend2", conf.Partitions[31].Backend)
		assert.Nil(t, router.AddTable("sbtest", conf))
	}

	{
		conf, err := router.HashUniform("t8", "id", []string{"backend1", "backend2", "backend3"}, 8)
		assert.Nil(t, err)
		assert.Equal(t, 6, len(conf.Partitions))
		assert.Equal(t, "512-1365", conf.Partitions[1].Segment)
		assert.Equal(t, "3242-4096", conf.Partitions[5].Segment)
		assert.Nil(t, router.AddTable("sbtest", conf))
	}
}

func TestRouterComputeHashError(t *testing.T) {
	log := xbase.NewNullLog()
	router := MockNewRouter(log)

	tcases := []struct {
		table    string
		shardkey string
		backends []string
		num      int
		err      string
	}{
		{"", "id", []string{"b1"}, 0, "table.cant.be.null"},
		{"t", "", []string{"b1"}, 0, "shard.key.cant.be.null"},
		{"t", "id", nil, 0, "router.compute.backends.is.null"},
		{"t", "id", []string{"b1"}, 7, "number.of.partitions.must.be.one.of.the.list.[8, 16, 32, 64]"},
	}
	for _, tcase := range tcases {
		_, err := router.HashUniform(tcase.table, tcase.shardkey, tcase.backends, tcase.num)
		assert.Equal(t, tcase.err, err.Error())
	}
}

func TestRouterComputeOthers(t *testing.T) {
	log := xbase.NewNullLog()
	router := MockNewRouter(log)

	{
		conf, err := router.GlobalUniform("g", []string{"backend1", "backend2"})
		assert.Nil(t, err)
		assert.Equal(t, 2, len(conf.Partitions))
		assert.Nil(t, router.AddTable("sbtest", conf))

		_, err = router.GlobalUniform("", []string{"backend1"})
		assert.NotNil(t, err)
		_, err = router.GlobalUniform("g", nil)
		assert.NotNil(t, err)
	}

	{
		conf, err := router.SingleUniform("s", []string{"backend1", "backend2"})
		assert.Nil(t, err)
		assert.Equal(t, "backend1", conf.Partitions[0].Backend)
		assert.Nil(t, router.AddTable("sbtest", conf))

		_, err = router.SingleUniform("s", nil)
		assert.NotNil(t, err)
	}

	{
		conf, err := router.ListUniform("l", "id", map[string]string{"2": "backend2", "1": "backend1"})
		assert.Nil(t, err)
		assert.Equal(t, "l_0000", conf.Partitions[0].Table)
		assert.Equal(t, "1", conf.Partitions[0].ListValue)
		assert.Equal(t, "backend2", conf.Partitions[1].Backend)
		assert.Nil(t, router.AddTable("sbtest", conf))

		_, err = router.ListUniform("l", "id", nil)
		assert.Equal(t, "router.compute.partition.list.is.null", err.Error())
		_, err = router.ListUniform("l", "", map[string]string{"1": "b1"})
		assert.Equal(t, "shard.key.cant.be.null", err.Error())
	}
}

func TestRouterComputeSlotLayout(t *testing.T) {
	layout := slotLayout(16, 4, 3)
	assert.Equal(t, [][][2]int{
		{{0, 5}},
		{{5, 10}},
		{{10, 16}},
	}, layout)

	layout = slotLayout(16, 2, 2)
	assert.Equal(t, [][][2]int{
		{{0, 2}, {2, 4}, {4, 6}, {6, 8}},
		{{8, 10}, {10, 12}, {12, 14}, {14, 16}},
	}, layout)
}
