//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

package aspirasi

import "time"

// AggregationStatus describes the outcome of the aggregation stage.
type AggregationStatus string

// Aggregation status values.
const (
	// StatusCollected means the aggregation call succeeded over a
	// non-empty relevant set.
	StatusCollected AggregationStatus = "terkumpul"
	// StatusNotRelevant means no evaluation was relevant enough to
	// aggregate; the stage short-circuited without a model call.
	StatusNotRelevant AggregationStatus = "tidak_relevan"
	// StatusError means the aggregation call or its parsing failed.
	StatusError AggregationStatus = "error"
)

// EvaluationResult is one member's judgment of the aspiration. Exactly
// one exists per (member, aspiration) pair per run; it is never mutated
// after creation. A failed evaluation carries the failure description in
// Error with the remaining fields at their defaults.
type EvaluationResult struct {
	// MemberID references the evaluating member.
	MemberID string `json:"member_id"`
	// AspirationID references the evaluated aspiration.
	AspirationID string `json:"aspirasi_id"`
	// Relevance is the member's relevance judgment. Defaults to Rendah
	// when the evaluation failed.
	Relevance Relevance `json:"relevansi"`
	// Rationale explains the relevance judgment.
	Rationale string `json:"alasan_relevansi"`
	// KeyPoints are the follow-up-worthy points the member identified.
	KeyPoints []string `json:"poin_kunci"`
	// Recommendation is the member's preliminary follow-up suggestion.
	Recommendation string `json:"rekomendasi_awal"`
	// Cost is the cost incurred by the evaluation call.
	Cost float64 `json:"cost_usd"`
	// Error is the failure description, empty on success.
	Error string `json:"error,omitempty"`
}

// OK reports whether the evaluation completed without error.
func (r EvaluationResult) OK() bool {
	return r.Error == ""
}

// AggregationResult is the consensus built from the relevant
// evaluations. One exists per run.
//
// Invariant: MemberCount equals the number of error-free evaluations
// with relevance Tinggi or Sedang at the moment aggregation ran.
type AggregationResult struct {
	// Status is the stage outcome.
	Status AggregationStatus `json:"status"`
	// MemberCount is the number of evaluations that contributed.
	MemberCount int `json:"jumlah_anggota"`
	// Summary is the consensus summary.
	Summary string `json:"ringkasan"`
	// Themes are the common themes across contributions.
	Themes []string `json:"tema_utama"`
	// Factions are the factions represented in the contributions.
	Factions []string `json:"fraksi_terlibat"`
	// Recommendation is the consolidated follow-up recommendation.
	Recommendation string `json:"rekomendasi_tindak_lanjut"`
	// Cost is the cost incurred by the aggregation call.
	Cost float64 `json:"cost_usd"`
	// Error is the failure description, empty unless Status is error.
	Error string `json:"error,omitempty"`
}

// ActionPlanResult is the concrete, budgeted follow-up plan. One exists
// per run; when aggregation did not succeed it is a degenerate record
// whose Error explains the missing precondition.
type ActionPlanResult struct {
	// Steps are the ordered follow-up actions.
	Steps []string `json:"langkah_tindak_lanjut"`
	// ResponsibleBody is the commission or body owning the follow-up.
	ResponsibleBody string `json:"komisi_penanggung_jawab"`
	// Timeline is the estimated execution timeline.
	Timeline string `json:"timeline"`
	// Indicators are the success indicators.
	Indicators []string `json:"indikator_keberhasilan"`
	// Mechanism is the parliamentary mechanism (RDP, hearing, working
	// visit, ...).
	Mechanism string `json:"mekanisme"`
	// BudgetEstimate is the total budget estimate narrative.
	BudgetEstimate string `json:"estimasi_anggaran"`
	// BudgetLines are the itemized budget allocations.
	BudgetLines []string `json:"rincian_anggaran"`
	// FundingSource is the proposed funding source narrative.
	FundingSource string `json:"sumber_dana"`
	// Cost is the cost incurred by the planning call.
	Cost float64 `json:"cost_usd"`
	// Error is the failure description, empty on success.
	Error string `json:"error,omitempty"`
}

// RunReport is the terminal artifact of one pipeline run. It always
// contains one evaluation per member, the single aggregation result, the
// single action plan, and the total cost of all calls.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// Aspiration is the aspiration the run evaluated.
	Aspiration Aspiration `json:"aspirasi"`
	// Evaluations holds one result per member, in member order.
	Evaluations []EvaluationResult `json:"absorpsi"`
	// Aggregation is the consensus stage result.
	Aggregation AggregationResult `json:"kompilasi"`
	// ActionPlan is the planning stage result.
	ActionPlan ActionPlanResult `json:"tindak_lanjut"`
	// TotalCost is the sum of every stage's cost.
	TotalCost float64 `json:"total_cost_usd"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`
}
