//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

package pipeline

import (
	"time"

	"github.com/aspirasi-ai/aspirasi-agent-go/agent"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/actionplan"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/aggregation"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/evaluation"
	"github.com/aspirasi-ai/aspirasi-agent-go/cost"
	"github.com/aspirasi-ai/aspirasi-agent-go/model"
)

const (
	defaultBatchSize  = 10
	defaultBatchDelay = time.Second
)

// options contains configuration options for creating a Pipeline.
type options struct {
	model       model.Model
	costs       *cost.Calculator
	batchSize   int
	batchDelay  time.Duration
	evaluation  *evaluation.Agent
	aggregation *aggregation.Agent
	actionPlan  *actionplan.Agent
}

var defaultOptions = options{
	batchSize:  defaultBatchSize,
	batchDelay: defaultBatchDelay,
}

// Option configures the pipeline.
type Option func(*options)

// WithModel sets the generation client used by all default stage agents.
func WithModel(m model.Model) Option {
	return func(o *options) {
		o.model = m
	}
}

// WithCostCalculator sets the cost calculator used by all default stage
// agents.
func WithCostCalculator(c *cost.Calculator) Option {
	return func(o *options) {
		o.costs = c
	}
}

// WithBatchSize sets how many member evaluations run concurrently.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithBatchDelay sets the pause between consecutive evaluation batches,
// a courtesy toward backend rate limits.
func WithBatchDelay(d time.Duration) Option {
	return func(o *options) {
		o.batchDelay = d
	}
}

// WithEvaluationAgent replaces the default evaluation agent.
func WithEvaluationAgent(a *evaluation.Agent) Option {
	return func(o *options) {
		o.evaluation = a
	}
}

// WithAggregationAgent replaces the default aggregation agent.
func WithAggregationAgent(a *aggregation.Agent) Option {
	return func(o *options) {
		o.aggregation = a
	}
}

// WithActionPlanAgent replaces the default action-planning agent.
func WithActionPlanAgent(a *actionplan.Agent) Option {
	return func(o *options) {
		o.actionPlan = a
	}
}

// agentOptions renders the shared stage-agent options.
func (o *options) agentOptions() []agent.Option {
	return []agent.Option{
		agent.WithModel(o.model),
		agent.WithCostCalculator(o.costs),
	}
}
