/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"encoding/json"
)

// PlanType names a plan kind, it is also the key in the explain output.
type PlanType string

const (
	PlanTypeSelect    PlanType = "PlanTypeSelect"
	PlanTypeAggregate PlanType = "PlanTypeAggregate"
	PlanTypeGroupBy   PlanType = "PlanTypeGroupBy"
	PlanTypeOrderby   PlanType = "PlanTypeOrderby"
	PlanTypeLimit     PlanType = "PlanTypeLimit"
)

// Plan is one step of a select plan.
type Plan interface {
	Build() error
	Type() PlanType
	JSON() string
}

// PlanTree holds the sub plans of a select, at most one per type.
type PlanTree struct {
	order []PlanType
	plans map[PlanType]Plan
}

// NewPlanTree creates the new plan tree.
func NewPlanTree() *PlanTree {
	return &PlanTree{
		plans: make(map[PlanType]Plan, 4),
	}
}

// Add adds the plan, a plan of the same type is replaced in place.
func (pt *PlanTree) Add(plan Plan) {
	typ := plan.Type()
	if _, ok := pt.plans[typ]; !ok {
		pt.order = append(pt.order, typ)
	}
	pt.plans[typ] = plan
}

// Build builds the plans in the order they were added.
func (pt *PlanTree) Build() error {
	for _, typ := range pt.order {
		if err := pt.plans[typ].Build(); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the plan of the type or nil.
func (pt *PlanTree) Get(typ PlanType) Plan {
	return pt.plans[typ]
}

// Plans returns the plans in the order they were added.
func (pt *PlanTree) Plans() []Plan {
	plans := make([]Plan, 0, len(pt.order))
	for _, typ := range pt.order {
		plans = append(plans, pt.plans[typ])
	}
	return plans
}

func toJSON(v interface{}) string {
	bout, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err.Error()
	}
	return string(bout)
}
