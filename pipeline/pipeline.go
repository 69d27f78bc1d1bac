//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package pipeline orchestrates the three-stage aspiration workflow:
// batched concurrent per-member evaluation, consensus aggregation, and
// action planning. A run always completes and returns a full report,
// whatever the individual stages encountered.
package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aspirasi-ai/aspirasi-agent-go/agent/actionplan"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/aggregation"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/evaluation"
	"github.com/aspirasi-ai/aspirasi-agent-go/aspirasi"
	"github.com/aspirasi-ai/aspirasi-agent-go/log"
)

// Pipeline drives one aspiration through evaluation, aggregation, and
// planning. Stages run strictly in sequence; only the evaluation stage
// fans out internally, one batch at a time.
type Pipeline struct {
	evaluation  *evaluation.Agent
	aggregation *aggregation.Agent
	actionPlan  *actionplan.Agent
	batchSize   int
	batchDelay  time.Duration
}

// New creates a pipeline. Stage agents default to ones built from
// WithModel and WithCostCalculator; providing explicit agents overrides
// them.
func New(opts ...Option) (*Pipeline, error) {
	o := defaultOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.batchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", o.batchSize)
	}
	if o.batchDelay < 0 {
		return nil, fmt.Errorf("batch delay must be non-negative, got %v", o.batchDelay)
	}
	if o.model == nil && (o.evaluation == nil || o.aggregation == nil || o.actionPlan == nil) {
		return nil, fmt.Errorf("a model is required unless all stage agents are provided")
	}

	if o.evaluation == nil {
		o.evaluation = evaluation.New(o.agentOptions()...)
	}
	if o.aggregation == nil {
		o.aggregation = aggregation.New(o.agentOptions()...)
	}
	if o.actionPlan == nil {
		o.actionPlan = actionplan.New(o.agentOptions()...)
	}

	return &Pipeline{
		evaluation:  o.evaluation,
		aggregation: o.aggregation,
		actionPlan:  o.actionPlan,
		batchSize:   o.batchSize,
		batchDelay:  o.batchDelay,
	}, nil
}

// Run evaluates one aspiration against the given members and returns
// the run report. Individual stage failures are recorded on their
// result records; Run itself never fails.
func (p *Pipeline) Run(
	ctx context.Context,
	asp aspirasi.Aspiration,
	members []aspirasi.Member,
) *aspirasi.RunReport {
	started := time.Now()
	report := &aspirasi.RunReport{
		RunID:      uuid.NewString(),
		Aspiration: asp,
		StartedAt:  started,
	}

	log.Infof("run %s: evaluating aspiration %q with %d members (batch size %d)",
		report.RunID, asp.ID, len(members), p.batchSize)

	report.Evaluations = p.evaluateAll(ctx, asp, members)
	report.Aggregation = p.aggregation.Invoke(ctx, asp, report.Evaluations)
	report.ActionPlan = p.actionPlan.Invoke(ctx, asp, report.Aggregation)

	total := report.Aggregation.Cost + report.ActionPlan.Cost
	for _, e := range report.Evaluations {
		total += e.Cost
	}
	report.TotalCost = total
	report.Elapsed = time.Since(started)

	log.Infof("run %s: done in %v, aggregation status %s, total cost %.6f",
		report.RunID, report.Elapsed, report.Aggregation.Status, report.TotalCost)
	return report
}

// evaluateAll fans the evaluation agent out over the members in
// consecutive batches of batchSize, pausing batchDelay between batches.
// Results keep member order regardless of batch boundaries.
func (p *Pipeline) evaluateAll(
	ctx context.Context,
	asp aspirasi.Aspiration,
	members []aspirasi.Member,
) []aspirasi.EvaluationResult {
	results := make([]aspirasi.EvaluationResult, len(members))
	if len(members) == 0 {
		return results
	}

	batches := (len(members) + p.batchSize - 1) / p.batchSize
	for start := 0; start < len(members); start += p.batchSize {
		end := min(start+p.batchSize, len(members))
		log.Debugf("evaluating batch %d/%d (%d members)", start/p.batchSize+1, batches, end-start)

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int, member aspirasi.Member) {
				defer wg.Done()
				// Recover so that one broken evaluation cannot take
				// down the batch; the member still gets a result.
				defer func() {
					if r := recover(); r != nil {
						log.Errorf("evaluation panic for member %s: %v\n%s",
							member.ID, r, string(debug.Stack()))
						results[idx] = aspirasi.EvaluationResult{
							MemberID:     member.ID,
							AspirationID: asp.ID,
							Relevance:    aspirasi.RelevanceLow,
							Error:        fmt.Sprintf("evaluation panic: %v", r),
						}
					}
				}()
				results[idx] = p.evaluation.Invoke(ctx, member, asp)
			}(i, members[i])
		}
		wg.Wait()

		if end < len(members) {
			p.pause(ctx)
		}
	}
	return results
}

// pause suspends between batches. A cancelled context cuts the pause
// short; the run itself still proceeds to completion.
func (p *Pipeline) pause(ctx context.Context) {
	if p.batchDelay <= 0 {
		return
	}
	timer := time.NewTimer(p.batchDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
