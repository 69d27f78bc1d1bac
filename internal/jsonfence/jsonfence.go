//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package jsonfence extracts JSON objects from model output that may be
// wrapped in Markdown code fences.
package jsonfence

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrMalformed reports model output that does not contain a valid JSON
// object after fence stripping.
var ErrMalformed = fmt.Errorf("malformed model response")

// Extract strips a surrounding Markdown code fence, if any, and returns
// the trimmed JSON payload. It does not validate the payload.
func Extract(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "```"); ok {
		// A bare fence may still carry a language tag on the opening
		// line; drop the tag together with the line break.
		if idx := strings.IndexByte(rest, '\n'); idx >= 0 && isLanguageTag(rest[:idx]) {
			rest = rest[idx:]
		}
		s = rest
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Unmarshal extracts the JSON payload from raw and decodes it into v.
// Decoding failures wrap ErrMalformed.
func Unmarshal(raw string, v any) error {
	payload := Extract(raw)
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// isLanguageTag reports whether s looks like a fence language tag
// (a short run of letters or digits, e.g. "json5").
func isLanguageTag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 16 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
