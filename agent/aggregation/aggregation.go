//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package aggregation implements the second pipeline stage (menghimpun):
// the relevant member evaluations are compiled into one consensus.
package aggregation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aspirasi-ai/aspirasi-agent-go/agent"
	"github.com/aspirasi-ai/aspirasi-agent-go/aspirasi"
)

const systemPrompt = `Anda adalah staff ahli DPR yang bertugas mengompilasi masukan dari para anggota DPR.
Tugas Anda adalah:
1. Merangkum konsensus dari para anggota
2. Mengidentifikasi pola dan tema umum
3. Menyusun rekomendasi tindak lanjut yang komprehensif

Selalu berikan respons dalam format JSON yang valid.`

// defaultTemperature keeps the consensus summary moderately creative.
const defaultTemperature = 0.7

// Agent compiles relevant evaluations into one consensus.
type Agent struct {
	opts agent.Options
}

// New creates an aggregation agent.
func New(opts ...agent.Option) *Agent {
	o := agent.NewOptions(opts...)
	if o.Temperature == nil {
		t := defaultTemperature
		o.Temperature = &t
	}
	return &Agent{opts: o}
}

// payload is the JSON shape the model is asked to produce.
type payload struct {
	Ringkasan               string   `json:"ringkasan"`
	TemaUtama               []string `json:"tema_utama"`
	FraksiTerlibat          []string `json:"fraksi_terlibat"`
	RekomendasiTindakLanjut string   `json:"rekomendasi_tindak_lanjut"`
}

// contribution is the per-member slice of an evaluation that is fed
// back to the model for summarization.
type contribution struct {
	MemberID        string   `json:"member_id"`
	Relevansi       string   `json:"relevansi"`
	AlasanRelevansi string   `json:"alasan_relevansi"`
	PoinKunci       []string `json:"poin_kunci"`
	RekomendasiAwal string   `json:"rekomendasi_awal"`
}

// Invoke compiles the evaluations of one run. Only error-free
// evaluations with relevance Tinggi or Sedang contribute; an empty
// contributing set short-circuits to status tidak_relevan without a
// model call. Invoke never returns an error.
func (a *Agent) Invoke(
	ctx context.Context,
	asp aspirasi.Aspiration,
	evaluations []aspirasi.EvaluationResult,
) (result aspirasi.AggregationResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Status = aspirasi.StatusError
			result.Error = fmt.Sprintf("aggregation panic: %v", r)
		}
	}()

	relevant := filterRelevant(evaluations)
	if len(relevant) == 0 {
		return aspirasi.AggregationResult{
			Status:      aspirasi.StatusNotRelevant,
			MemberCount: 0,
			Cost:        0,
		}
	}

	result = aspirasi.AggregationResult{
		Status:      aspirasi.StatusError,
		MemberCount: len(relevant),
	}

	var p payload
	incurred, err := agent.Generate(ctx, a.opts, systemPrompt, a.userPrompt(asp, relevant), &p)
	result.Cost = incurred
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Status = aspirasi.StatusCollected
	result.Summary = p.Ringkasan
	result.Themes = p.TemaUtama
	result.Factions = p.FraksiTerlibat
	result.Recommendation = p.RekomendasiTindakLanjut
	return result
}

// filterRelevant keeps the error-free evaluations whose relevance
// qualifies for aggregation. Errored evaluations are excluded exactly
// like genuine Rendah judgments.
func filterRelevant(evaluations []aspirasi.EvaluationResult) []aspirasi.EvaluationResult {
	var relevant []aspirasi.EvaluationResult
	for _, e := range evaluations {
		if e.OK() && e.Relevance.Relevant() {
			relevant = append(relevant, e)
		}
	}
	return relevant
}

func (a *Agent) userPrompt(asp aspirasi.Aspiration, relevant []aspirasi.EvaluationResult) string {
	contributions := make([]contribution, len(relevant))
	for i, e := range relevant {
		contributions[i] = contribution{
			MemberID:        e.MemberID,
			Relevansi:       e.Relevance.String(),
			AlasanRelevansi: e.Rationale,
			PoinKunci:       e.KeyPoints,
			RekomendasiAwal: e.Recommendation,
		}
	}
	// Indentation keeps the prompt readable during debugging; the
	// encoding of our own structs cannot fail.
	data, _ := json.MarshalIndent(contributions, "", "  ")

	return fmt.Sprintf(`Anda adalah staff ahli DPR yang mengompilasi masukan dari %d anggota DPR.

Aspirasi: %s
Kategori: %s

Tanggapan anggota:
%s

Tugas Anda:
1. Rangkum konsensus dari para anggota
2. Identifikasi pola dan tema umum
3. Susun rekomendasi tindak lanjut yang komprehensif

Berikan respons dalam format JSON:
{
    "ringkasan": "ringkasan konsensus",
    "tema_utama": ["tema1", "tema2", ...],
    "fraksi_terlibat": ["fraksi1", "fraksi2", ...],
    "rekomendasi_tindak_lanjut": "rekomendasi detail"
}`, len(contributions), asp.Content, asp.Category, string(data))
}
