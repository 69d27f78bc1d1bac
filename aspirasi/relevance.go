//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

package aspirasi

import "strings"

// Relevance is the ordered categorical judgment of how important an
// aspiration is to a member's constituency.
type Relevance string

// Relevance levels, highest first.
const (
	RelevanceHigh   Relevance = "Tinggi"
	RelevanceMedium Relevance = "Sedang"
	RelevanceLow    Relevance = "Rendah"
)

// String returns the string representation of the relevance level.
func (r Relevance) String() string {
	return string(r)
}

// Relevant reports whether the level qualifies an evaluation for the
// aggregation stage.
func (r Relevance) Relevant() bool {
	return r == RelevanceHigh || r == RelevanceMedium
}

// ParseRelevance normalizes a model-produced relevance string. Casing
// varies in practice; anything unrecognized is conservatively treated
// as Rendah.
func ParseRelevance(s string) Relevance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tinggi":
		return RelevanceHigh
	case "sedang":
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}
