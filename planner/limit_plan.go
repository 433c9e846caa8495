/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// LimitPlan represents limit plan.
type LimitPlan struct {
	log *xlog.Log

	node      *sqlparser.Limit
	rewritten *sqlparser.Limit
	Offset    int
	Limit     int

	// Pushdown is false when the shards must return all their rows.
	Pushdown bool

	typ PlanType
}

var _ Plan = (*LimitPlan)(nil)

// NewLimitPlan used to create LimitPlan.
func NewLimitPlan(log *xlog.Log, node *sqlparser.Limit, pushdown bool) *LimitPlan {
	return &LimitPlan{
		log:      log,
		node:     node,
		Pushdown: pushdown,
		typ:      PlanTypeLimit,
	}
}

// limitValue reads one limit operand, only non-negative integer literals
// can be merged.
func limitValue(e sqlparser.Expr) (int, error) {
	if e == nil {
		return 0, nil
	}
	val, ok := e.(*sqlparser.SQLVal)
	if !ok || val.Type != sqlparser.IntVal {
		return 0, errors.New("unsupported: limit.offset.or.counts.must.be.IntVal")
	}
	out, err := strconv.ParseInt(string(val.Val), 10, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if out < 0 {
		return 0, errors.Errorf("unsupported: limit.value[%d].negative", out)
	}
	return int(out), nil
}

// Build reads offset and count, and when the limit can be pushed down
// the shards are asked for offset+count rows.
func (p *LimitPlan) Build() error {
	if p.node == nil {
		return nil
	}

	var err error
	if p.Offset, err = limitValue(p.node.Offset); err != nil {
		return err
	}
	if p.Limit, err = limitValue(p.node.Rowcount); err != nil {
		return err
	}
	if p.Pushdown {
		p.rewritten = &sqlparser.Limit{Rowcount: sqlparser.NewIntVal([]byte(strconv.Itoa(p.Offset + p.Limit)))}
	}
	return nil
}

// Rewritten returns the limit sent to the shards, nil if none.
func (p *LimitPlan) Rewritten() *sqlparser.Limit {
	return p.rewritten
}

// Type returns the type of the plan.
func (p *LimitPlan) Type() PlanType {
	return p.typ
}

// JSON returns the plan info.
func (p *LimitPlan) JSON() string {
	return toJSON(p)
}
