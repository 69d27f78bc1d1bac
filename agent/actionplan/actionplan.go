//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package actionplan implements the third pipeline stage
// (menindaklanjuti): the compiled consensus is turned into a concrete,
// budgeted follow-up plan.
package actionplan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aspirasi-ai/aspirasi-agent-go/agent"
	"github.com/aspirasi-ai/aspirasi-agent-go/aspirasi"
)

const systemPrompt = `Anda adalah Ketua Komisi terkait di DPR RI yang bertugas menentukan tindak lanjut aspirasi rakyat.
Tugas Anda adalah:
1. Menentukan langkah konkret tindak lanjut
2. Menentukan komisi atau badan yang bertanggung jawab
3. Membuat timeline pelaksanaan
4. Menentukan indikator keberhasilan
5. MENGHITUNG dan menentukan estimasi anggaran yang dibutuhkan (dalam Rupiah)
6. Merinci alokasi anggaran per item/langkah
7. Menentukan sumber dana yang tepat (APBN, APBD, atau kombinasi)

PENTING: Anda harus memberikan estimasi anggaran yang realistis berdasarkan:
- Harga pasar saat ini untuk barang/jasa terkait
- Skala dan cakupan program yang diusulkan
- Pengalaman program serupa di masa lalu
- Standar biaya pemerintah Indonesia

Selalu berikan respons dalam format JSON yang valid.`

// errNoValidAggregation is the precondition error recorded when the
// aggregation stage did not produce a usable consensus.
const errNoValidAggregation = "Tidak ada kompilasi yang valid untuk ditindaklanjuti"

// defaultTemperature keeps budget estimates conservative.
const defaultTemperature = 0.2

// Agent turns a collected consensus into an action plan.
type Agent struct {
	opts agent.Options
}

// New creates an action-planning agent.
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
	LangkahTindakLanjut   []string `json:"langkah_tindak_lanjut"`
	KomisiPenanggungJawab string   `json:"komisi_penanggung_jawab"`
	Timeline              string   `json:"timeline"`
	IndikatorKeberhasilan []string `json:"indikator_keberhasilan"`
	Mekanisme             string   `json:"mekanisme"`
	EstimasiAnggaran      string   `json:"estimasi_anggaran"`
	RincianAnggaran       []string `json:"rincian_anggaran"`
	SumberDana            string   `json:"sumber_dana"`
}

// Invoke produces the follow-up plan for a run. It requires the
// aggregation to have status terkumpul; any other status short-circuits
// without a model call, returning a degenerate result whose Error names
// the missing precondition. Invoke never returns an error.
func (a *Agent) Invoke(
	ctx context.Context,
	asp aspirasi.Aspiration,
	aggregation aspirasi.AggregationResult,
) (result aspirasi.ActionPlanResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("action planning panic: %v", r)
		}
	}()

	if aggregation.Status != aspirasi.StatusCollected {
		return aspirasi.ActionPlanResult{
			Error: errNoValidAggregation,
			Cost:  0,
		}
	}

	var p payload
	incurred, err := agent.Generate(ctx, a.opts, systemPrompt, a.userPrompt(asp, aggregation), &p)
	result.Cost = incurred
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Steps = p.LangkahTindakLanjut
	result.ResponsibleBody = p.KomisiPenanggungJawab
	result.Timeline = p.Timeline
	result.Indicators = p.IndikatorKeberhasilan
	result.Mechanism = p.Mekanisme
	result.BudgetEstimate = p.EstimasiAnggaran
	result.BudgetLines = p.RincianAnggaran
	result.FundingSource = p.SumberDana
	return result
}

func (a *Agent) userPrompt(asp aspirasi.Aspiration, aggregation aspirasi.AggregationResult) string {
	// Encoding our own struct cannot fail.
	data, _ := json.MarshalIndent(aggregation, "", "  ")

	return fmt.Sprintf(`Anda adalah Ketua Komisi terkait di DPR RI.

Aspirasi rakyat: %s
Kategori: %s
Prioritas: %s

Hasil kompilasi dari %d anggota:
%s

Tugas Anda:
1. Tentukan langkah konkret tindak lanjut
2. Tentukan komisi atau badan yang bertanggung jawab
3. Buat timeline pelaksanaan
4. Tentukan indikator keberhasilan
5. HITUNG estimasi anggaran yang realistis (dalam Rupiah)
6. Rinci alokasi anggaran per langkah/item
7. Tentukan sumber dana (APBN/APBD/kombinasi)

Berikan respons dalam format JSON:
{
    "langkah_tindak_lanjut": ["langkah1", "langkah2", ...],
    "komisi_penanggung_jawab": "nama komisi",
    "timeline": "estimasi waktu",
    "indikator_keberhasilan": ["indikator1", "indikator2", ...],
    "mekanisme": "RDP/Hearing/Kunjungan Kerja/dll",
    "estimasi_anggaran": "Total estimasi anggaran (misal: Rp 15.5 miliar untuk 2 tahun)",
    "rincian_anggaran": [
        "Item 1: Rp X miliar - deskripsi",
        "Item 2: Rp Y miliar - deskripsi",
        ...
    ],
    "sumber_dana": "Sumber dana usulan (misal: APBN 70%% (Kementerian X) + APBD Provinsi Y 30%%)"
}`, asp.Content, asp.Category, asp.Priority, aggregation.MemberCount, string(data))
}
