//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package aspirasi defines the domain model of the aspiration-handling
// simulation: DPR member personas, the public aspiration under
// evaluation, and the per-stage result records. JSON tags follow the
// Indonesian wire keys used by the prompts.
package aspirasi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Member is one simulated DPR RI legislator persona. Members are
// immutable once created; the pipeline only reads them.
type Member struct {
	// ID uniquely identifies the member.
	ID string `json:"id" yaml:"id"`
	// Name is the member's full name.
	Name string `json:"nama" yaml:"nama"`
	// Party is the member's faction (fraksi).
	Party string `json:"fraksi" yaml:"fraksi"`
	// Constituency is the member's electoral district (dapil).
	Constituency string `json:"dapil" yaml:"dapil"`
	// Commission is the DPR commission the member sits on.
	Commission string `json:"komisi" yaml:"komisi"`
	// Background is a short professional background sketch.
	Background string `json:"latar_belakang" yaml:"latar_belakang"`
}

// PromptContext renders the member as prompt context.
func (m Member) PromptContext() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nama: %s\n", m.Name)
	fmt.Fprintf(&b, "Fraksi: %s\n", m.Party)
	fmt.Fprintf(&b, "Daerah Pemilihan: %s\n", m.Constituency)
	fmt.Fprintf(&b, "Komisi: %s", m.Commission)
	if m.Background != "" {
		fmt.Fprintf(&b, "\nLatar Belakang: %s", m.Background)
	}
	return b.String()
}

// Aspiration is the public input item under evaluation. One aspiration
// is processed per pipeline run; it is immutable.
type Aspiration struct {
	// ID uniquely identifies the aspiration.
	ID string `json:"id" yaml:"id"`
	// Content is the free-text aspiration body.
	Content string `json:"content" yaml:"content"`
	// Category classifies the aspiration (infrastruktur, pendidikan, ...).
	Category string `json:"kategori" yaml:"kategori"`
	// Priority is the submitter-assigned priority.
	Priority string `json:"prioritas" yaml:"prioritas"`
}

// NewAspiration creates an aspiration with a generated id.
func NewAspiration(content, category, priority string) Aspiration {
	return Aspiration{
		ID:       uuid.NewString(),
		Content:  content,
		Category: category,
		Priority: priority,
	}
}

// PromptContext renders the aspiration as prompt context.
func (a Aspiration) PromptContext() string {
	return fmt.Sprintf("Isi Aspirasi: %s\nKategori: %s\nPrioritas: %s",
		a.Content, a.Category, a.Priority)
}
