//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package agent provides the plumbing shared by the stage agents: common
// construction options and the single-call helper that turns one
// generation request into a decoded JSON payload plus its cost.
//
// Stage agents are total functions: their Invoke methods convert every
// failure into a result record carrying an error description and never
// let an error escape to the orchestrator.
package agent

import (
	"context"
	"errors"

	"github.com/aspirasi-ai/aspirasi-agent-go/cost"
	"github.com/aspirasi-ai/aspirasi-agent-go/internal/jsonfence"
	"github.com/aspirasi-ai/aspirasi-agent-go/model"
)

// Options contains the configuration shared by all stage agents.
type Options struct {
	// Model is the generation client the agent calls.
	Model model.Model
	// Costs converts token usage into cost.
	Costs *cost.Calculator
	// Temperature overrides the model's default sampling temperature.
	Temperature *float64
	// MaxTokens caps the completion length.
	MaxTokens *int
}

// Option configures a stage agent.
type Option func(*Options)

// NewOptions applies opts over the defaults. A missing cost calculator
// falls back to the default rates so that cost accounting is always on.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Costs == nil {
		o.Costs = cost.NewCalculator(cost.DefaultPromptRatePer1K, cost.DefaultCompletionRatePer1K)
	}
	return o
}

// WithModel sets the generation client.
func WithModel(m model.Model) Option {
	return func(o *Options) {
		o.Model = m
	}
}

// WithCostCalculator sets the cost calculator.
func WithCostCalculator(c *cost.Calculator) Option {
	return func(o *Options) {
		o.Costs = c
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = &n
	}
}

// ErrNoModel reports an agent constructed without a generation client.
var ErrNoModel = errors.New("no model configured")

// Generate issues one generation call with the given instructions and
// decodes the JSON object in the reply into out. It returns the cost
// incurred by the call: zero when the call itself failed, the cost of
// the completed call when only decoding failed.
func Generate(ctx context.Context, o Options, system, user string, out any) (float64, error) {
	if o.Model == nil {
		return 0, ErrNoModel
	}

	request := &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(system),
			model.NewUserMessage(user),
		},
		GenerationConfig: model.GenerationConfig{
			Temperature: o.Temperature,
			MaxTokens:   o.MaxTokens,
		},
	}

	response, err := o.Model.GenerateContent(ctx, request)
	if err != nil {
		return 0, err
	}

	// Absent usage metadata means zero cost, not an error.
	incurred := o.Costs.CostOfUsage(response.Usage)

	if err := jsonfence.Unmarshal(response.Content(), out); err != nil {
		return incurred, err
	}
	return incurred, nil
}
