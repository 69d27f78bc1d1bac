//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	openaiopt "github.com/openai/openai-go/option"
)

// options contains configuration options for creating a Model.
type options struct {
	// APIKey is the API key for the OpenAI client.
	APIKey string
	// BaseURL is the base URL for the OpenAI client, for
	// OpenAI-compatible endpoints.
	BaseURL string
	// OpenAIOptions are extra request options passed through to the
	// underlying OpenAI client.
	OpenAIOptions []openaiopt.RequestOption
}

var defaultOptions = options{}

// Option configures the OpenAI model.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.APIKey = key
	}
}

// WithBaseURL sets the base URL, allowing OpenAI-compatible backends.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.BaseURL = url
	}
}

// WithOpenAIOptions appends extra request options for the underlying
// OpenAI client.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) {
		o.OpenAIOptions = append(o.OpenAIOptions, opts...)
	}
}
