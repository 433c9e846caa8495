/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"fmt"
	"sort"
	"testing"

	"github.com/radondb/shardcore/config"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

type partial struct {
	sum, count, max, min int
}

// randomShards returns the per-shard group by results sorted by the key,
// and the merged groups they add up to.
func randomShards(faker *gofakeit.Faker, shards int) ([][][]interface{}, map[int]*partial) {
	want := make(map[int]*partial)
	out := make([][][]interface{}, shards)
	for s := 0; s < shards; s++ {
		groups := make(map[int]*partial)
		for i := faker.IntRange(0, 50); i > 0; i-- {
			key := faker.IntRange(0, 20)
			v := faker.IntRange(-1000, 1000)
			p, ok := groups[key]
			if !ok {
				groups[key] = &partial{sum: v, count: 1, max: v, min: v}
				continue
			}
			p.sum += v
			p.count++
			if v > p.max {
				p.max = v
			}
			if v < p.min {
				p.min = v
			}
		}

		keys := make([]int, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			p := groups[k]
			out[s] = append(out[s], []interface{}{k, p.sum, p.count, p.max, p.min})

			w, ok := want[k]
			if !ok {
				want[k] = &partial{sum: p.sum, count: p.count, max: p.max, min: p.min}
				continue
			}
			w.sum += p.sum
			w.count += p.count
			if p.max > w.max {
				w.max = p.max
			}
			if p.min < w.min {
				w.min = p.min
			}
		}
	}
	return out, want
}

func TestMergeGroupByRandom(t *testing.T) {
	node := "select a, sum(b), count(*), max(b), min(b) from t_order group by a"
	fields := []string{"a", "sum(b)", "count(*)", "max(b)", "min(b)"}
	results := func(shards [][][]interface{}) []QueryResult {
		out := make([]QueryResult, 0, len(shards))
		for _, rows := range shards {
			out = append(out, MockResult(fields, rows...))
		}
		return out
	}

	faker := gofakeit.New(2019)
	memoryConf := &config.MergeConfig{StreamGroupBy: false}
	for round := 0; round < 20; round++ {
		shards, want := randomShards(faker, faker.IntRange(1, 6))

		stream := mockMerge(t, mockContext(t, node, nil), nil, results(shards)...)
		memory := mockMerge(t, mockContext(t, node, memoryConf), memoryConf, results(shards)...)
		assert.Equal(t, memory, stream)

		keys := make([]int, 0, len(want))
		for k := range want {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		expected := make([][]string, 0, len(keys))
		for _, k := range keys {
			w := want[k]
			expected = append(expected, []string{
				fmt.Sprintf("%d", k),
				fmt.Sprintf("%d", w.sum),
				fmt.Sprintf("%d", w.count),
				fmt.Sprintf("%d", w.max),
				fmt.Sprintf("%d", w.min),
			})
		}
		if len(expected) == 0 {
			expected = nil
		}
		assert.Equal(t, expected, stream, "round %d", round)
	}
}
