//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package cost computes the monetary cost of generation calls from
// token usage and configured per-1000-token rates.
package cost

import (
	"github.com/aspirasi-ai/aspirasi-agent-go/model"
)

// Default per-1k-token rates, matching gpt-4.1-nano pricing.
const (
	DefaultPromptRatePer1K     = 0.0001
	DefaultCompletionRatePer1K = 0.0004
)

// Calculator converts token counts into cost using fixed per-1000-token
// rates. It is deterministic and side-effect free.
type Calculator struct {
	promptRatePer1K     float64
	completionRatePer1K float64
}

// NewCalculator creates a Calculator with the given per-1000-token rates.
func NewCalculator(promptRatePer1K, completionRatePer1K float64) *Calculator {
	return &Calculator{
		promptRatePer1K:     promptRatePer1K,
		completionRatePer1K: completionRatePer1K,
	}
}

// Cost returns the cost of a call that consumed the given token counts.
// Negative counts are treated as zero.
func (c *Calculator) Cost(promptTokens, completionTokens int) float64 {
	if promptTokens < 0 {
		promptTokens = 0
	}
	if completionTokens < 0 {
		completionTokens = 0
	}
	return float64(promptTokens)/1000*c.promptRatePer1K +
		float64(completionTokens)/1000*c.completionRatePer1K
}

// CostOfUsage returns the cost of the given usage. A nil usage means the
// backend reported no token accounting and costs nothing.
func (c *Calculator) CostOfUsage(usage *model.Usage) float64 {
	if usage == nil {
		return 0
	}
	return c.Cost(usage.PromptTokens, usage.CompletionTokens)
}
