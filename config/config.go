//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads process-wide simulation settings from the
// environment. The pipeline itself takes explicit options; this package
// only feeds them at the program edge.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the simulation settings. Values are read once at start
// and stay immutable during a run.
type Config struct {
	// OpenAIAPIKey authenticates against the generation backend.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// OpenAIBaseURL overrides the backend endpoint, for
	// OpenAI-compatible services.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	// Model is the text-generation model identifier.
	Model string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-nano"`

	// PromptCostPer1K is the cost per 1000 prompt tokens.
	PromptCostPer1K float64 `env:"PROMPT_COST_PER_1K" envDefault:"0.0001"`
	// CompletionCostPer1K is the cost per 1000 completion tokens.
	CompletionCostPer1K float64 `env:"COMPLETION_COST_PER_1K" envDefault:"0.0004"`

	// DefaultMemberCount is the number of members simulated when the
	// caller does not provide a roster size.
	DefaultMemberCount int `env:"DEFAULT_MEMBER_COUNT" envDefault:"50"`
	// BatchSize is how many member evaluations run concurrently.
	BatchSize int `env:"BATCH_SIZE" envDefault:"10"`
	// RateLimitDelay is the pause between evaluation batches.
	RateLimitDelay time.Duration `env:"RATE_LIMIT_DELAY" envDefault:"1s"`

	// LogLevel is the process log level.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.RateLimitDelay < 0 {
		return fmt.Errorf("RATE_LIMIT_DELAY must be non-negative, got %v", c.RateLimitDelay)
	}
	if c.DefaultMemberCount < 1 {
		return fmt.Errorf("DEFAULT_MEMBER_COUNT must be positive, got %d", c.DefaultMemberCount)
	}
	if c.PromptCostPer1K < 0 || c.CompletionCostPer1K < 0 {
		return fmt.Errorf("token rates must be non-negative")
	}
	return nil
}
