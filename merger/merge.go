/*
 * Radon
 *
 * Copyright 2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package merger

import (
	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/planner"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// Merge returns the one cursor the shard results are stitched into.
// The results are owned by the returned cursor and closed with it.
func Merge(log *xlog.Log, ctx *planner.SelectContext, results []QueryResult, conf *config.MergeConfig) (QueryResult, error) {
	if conf == nil {
		conf = config.DefaultMergeConfig()
	}
	if ctx.Strategy == "" {
		ctx.Decide(conf.StreamGroupBy)
	}

	var fields []string
	if len(results) == 0 {
		fields = append(fields, ctx.Fields...)
		for i := 0; i < ctx.HiddenCount; i++ {
			fields = append(fields, "")
		}
	} else {
		fields = columnNames(results[0])
		for _, r := range results[1:] {
			if r.ColumnCount() != len(fields) {
				closeAll(results)
				return nil, errors.Errorf("merger.shard.results.column.count[%d].mismatch[%d]", r.ColumnCount(), len(fields))
			}
		}
	}
	if err := ctx.Resolve(len(fields)); err != nil {
		closeAll(results)
		return nil, err
	}

	merged, err := dispatch(log, ctx, results, fields, conf)
	if err != nil {
		closeAll(results)
		return nil, err
	}
	if ctx.Limit != nil {
		merged = NewLimitDecorator(merged, ctx.Limit.Offset, ctx.Limit.Rowcount)
	}
	if ctx.HiddenCount > 0 {
		merged = NewProjectDecorator(merged, ctx.Visible(len(fields)))
	}
	return merged, nil
}

func dispatch(log *xlog.Log, ctx *planner.SelectContext, results []QueryResult, fields []string, conf *config.MergeConfig) (QueryResult, error) {
	strategy := ctx.Strategy
	if strategy == planner.MergeStreamGroupBy && !ctx.IsSameGroupByAndOrderBy() {
		log.Warning("merger.stream.groupby.needs.the.orderby.on.the.groupby.fallback.to.memory")
		strategy = planner.MergeMemoryGroupBy
	}
	if len(results) == 0 {
		if strategy == planner.MergeMemoryGroupBy {
			return NewGroupByMemory(ctx, nil, fields, conf.MaxMemoryRows)
		}
		return NewResultSet(fields, nil), nil
	}

	log.Debug("merger.strategy[%s].results[%d]", strategy, len(results))
	switch strategy {
	case planner.MergeIterator:
		return NewIteratorStream(results), nil
	case planner.MergeOrderBy:
		return NewOrderByStream(results, ctx.OrderBy), nil
	case planner.MergeStreamGroupBy:
		return NewGroupByStream(ctx, results), nil
	case planner.MergeMemoryGroupBy:
		return NewGroupByMemory(ctx, results, fields, conf.MaxMemoryRows)
	}
	return nil, errors.Errorf("merger.unsupported.strategy[%s]", strategy)
}
