//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package evaluation implements the first pipeline stage (menyerap):
// one DPR member absorbs and judges a public aspiration from the
// perspective of their constituency.
package evaluation

import (
	"context"
	"fmt"

	"github.com/aspirasi-ai/aspirasi-agent-go/agent"
	"github.com/aspirasi-ai/aspirasi-agent-go/aspirasi"
)

const systemPrompt = `Anda adalah seorang anggota DPR RI yang bertugas menyerap dan menganalisis aspirasi rakyat.
Tugas Anda adalah:
1. Memahami dan menganalisis aspirasi dari perspektif daerah pemilihan Anda
2. Menentukan relevansi aspirasi dengan konstituensi Anda
3. Mengidentifikasi poin-poin kunci yang perlu ditindaklanjuti

Selalu berikan respons dalam format JSON yang valid.`

// Agent evaluates one aspiration from one member's perspective.
type Agent struct {
	opts agent.Options
}

// New creates an evaluation agent.
func New(opts ...agent.Option) *Agent {
	return &Agent{opts: agent.NewOptions(opts...)}
}

// payload is the JSON shape the model is asked to produce.
type payload struct {
	Relevansi       string   `json:"relevansi"`
	AlasanRelevansi string   `json:"alasan_relevansi"`
	PoinKunci       []string `json:"poin_kunci"`
	RekomendasiAwal string   `json:"rekomendasi_awal"`
}

// Invoke produces the member's evaluation of the aspiration. It never
// returns an error: every failure is recorded on the result with the
// relevance conservatively defaulted to Rendah, so that failed
// evaluations stay out of the aggregation stage.
func (a *Agent) Invoke(
	ctx context.Context,
	member aspirasi.Member,
	asp aspirasi.Aspiration,
) (result aspirasi.EvaluationResult) {
	result = aspirasi.EvaluationResult{
		MemberID:     member.ID,
		AspirationID: asp.ID,
		Relevance:    aspirasi.RelevanceLow,
	}
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("evaluation panic: %v", r)
		}
	}()

	var p payload
	incurred, err := agent.Generate(ctx, a.opts, systemPrompt, a.userPrompt(member, asp), &p)
	result.Cost = incurred
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Relevance = aspirasi.ParseRelevance(p.Relevansi)
	result.Rationale = p.AlasanRelevansi
	result.KeyPoints = p.PoinKunci
	result.Recommendation = p.RekomendasiAwal
	return result
}

func (a *Agent) userPrompt(member aspirasi.Member, asp aspirasi.Aspiration) string {
	return fmt.Sprintf(`Anda adalah anggota DPR RI:
%s

Aspirasi rakyat yang masuk:
%s

Tugas Anda:
1. Pahami dan analisis aspirasi ini dari perspektif daerah pemilihan Anda
2. Tentukan apakah aspirasi ini relevan dengan konstituensi Anda
3. Identifikasi poin-poin kunci yang perlu ditindaklanjuti

Berikan respons dalam format JSON:
{
    "relevansi": "Tinggi/Sedang/Rendah",
    "alasan_relevansi": "penjelasan singkat",
    "poin_kunci": ["poin1", "poin2", ...],
    "rekomendasi_awal": "saran tindak lanjut"
}`, member.PromptContext(), asp.PromptContext())
}
