//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspirasi-ai/aspirasi-agent-go/agent"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/actionplan"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/aggregation"
	"github.com/aspirasi-ai/aspirasi-agent-go/agent/evaluation"
	"github.com/aspirasi-ai/aspirasi-agent-go/aspirasi"
	"github.com/aspirasi-ai/aspirasi-agent-go/cost"
	"github.com/aspirasi-ai/aspirasi-agent-go/model"
)

// rule maps a substring of the user prompt to a canned reply.
type rule struct {
	match   string
	content string
	err     error
}

// scriptedModel replies according to its rules and tracks concurrency.
type scriptedModel struct {
	mu             sync.Mutex
	rules          []rule
	defaultContent string
	usage          *model.Usage
	delay          time.Duration
	calls          int
	current        int
	maxConcurrent  int
}

func (s *scriptedModel) Info() model.Info {
	return model.Info{Name: "scripted"}
}

func (s *scriptedModel) GenerateContent(_ context.Context, request *model.Request) (*model.Response, error) {
	s.mu.Lock()
	s.calls++
	s.current++
	if s.current > s.maxConcurrent {
		s.maxConcurrent = s.current
	}
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.current--
	s.mu.Unlock()

	user := request.Messages[len(request.Messages)-1].Content
	for _, r := range s.rules {
		if strings.Contains(user, r.match) {
			if r.err != nil {
				return nil, r.err
			}
			return s.response(r.content), nil
		}
	}
	return s.response(s.defaultContent), nil
}

func (s *scriptedModel) response(content string) *model.Response {
	return &model.Response{
		Choices: []model.Choice{{Message: model.NewAssistantMessage(content)}},
		Usage:   s.usage,
	}
}

func members(n int) []aspirasi.Member {
	ms := make([]aspirasi.Member, n)
	for i := range ms {
		ms[i] = aspirasi.Member{
			ID:           fmt.Sprintf("anggota-%d", i+1),
			Name:         fmt.Sprintf("Anggota %d", i+1),
			Party:        "Fraksi Amanah",
			Constituency: "Jawa Barat II",
			Commission:   "Komisi V",
		}
	}
	return ms
}

var testAspiration = aspirasi.Aspiration{
	ID:       "aspirasi-1",
	Content:  "Perbaikan jalan rusak di jalur utama desa",
	Category: "infrastruktur",
	Priority: "tinggi",
}

const (
	evaluationHigh = `{"relevansi": "Tinggi", "alasan_relevansi": "di dapil saya", "poin_kunci": ["akses"], "rekomendasi_awal": "tindak lanjut"}`
	evaluationLow  = `{"relevansi": "Rendah", "alasan_relevansi": "di luar dapil"}`
	aggregationOK  = `{"ringkasan": "konsensus tercapai", "tema_utama": ["infrastruktur"], "fraksi_terlibat": ["Fraksi Amanah"], "rekomendasi_tindak_lanjut": "RDP"}`
	actionPlanOK   = `{"langkah_tindak_lanjut": ["RDP"], "komisi_penanggung_jawab": "Komisi V", "timeline": "6 bulan", "indikator_keberhasilan": ["selesai"], "mekanisme": "RDP", "estimasi_anggaran": "Rp 12 miliar", "rincian_anggaran": ["Perbaikan: Rp 12 miliar"], "sumber_dana": "APBN"}`
)

// newTestPipeline wires a pipeline whose three stages use separate
// scripted models.
func newTestPipeline(t *testing.T, evalModel, aggModel, planModel model.Model, opts ...Option) *Pipeline {
	t.Helper()
	calc := cost.NewCalculator(0.001, 0.002)
	opts = append([]Option{
		WithEvaluationAgent(evaluation.New(agent.WithModel(evalModel), agent.WithCostCalculator(calc))),
		WithAggregationAgent(aggregation.New(agent.WithModel(aggModel), agent.WithCostCalculator(calc))),
		WithActionPlanAgent(actionplan.New(agent.WithModel(planModel), agent.WithCostCalculator(calc))),
		WithBatchDelay(0),
	}, opts...)
	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "zero batch size", opts: []Option{WithModel(&scriptedModel{}), WithBatchSize(0)}},
		{name: "negative batch size", opts: []Option{WithModel(&scriptedModel{}), WithBatchSize(-3)}},
		{name: "negative delay", opts: []Option{WithModel(&scriptedModel{}), WithBatchDelay(-time.Second)}},
		{name: "no model and no agents", opts: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts...)
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestNew_DefaultAgents(t *testing.T) {
	p, err := New(WithModel(&scriptedModel{defaultContent: "{}"}))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, defaultBatchSize, p.batchSize)
	assert.Equal(t, defaultBatchDelay, p.batchDelay)
	assert.NotNil(t, p.evaluation)
	assert.NotNil(t, p.aggregation)
	assert.NotNil(t, p.actionPlan)
}

func TestRun_FullFlow(t *testing.T) {
	usage := &model.Usage{PromptTokens: 1000, CompletionTokens: 500}
	evalModel := &scriptedModel{
		rules:          []rule{{match: "Anggota 2", content: evaluationLow}},
		defaultContent: evaluationHigh,
		usage:          usage,
	}
	aggModel := &scriptedModel{defaultContent: aggregationOK, usage: usage}
	planModel := &scriptedModel{defaultContent: actionPlanOK, usage: usage}

	p := newTestPipeline(t, evalModel, aggModel, planModel, WithBatchSize(2))
	report := p.Run(context.Background(), testAspiration, members(3))

	require.NotNil(t, report)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, testAspiration, report.Aspiration)

	require.Len(t, report.Evaluations, 3)
	assert.Equal(t, aspirasi.RelevanceHigh, report.Evaluations[0].Relevance)
	assert.Equal(t, aspirasi.RelevanceLow, report.Evaluations[1].Relevance)
	assert.Equal(t, aspirasi.RelevanceHigh, report.Evaluations[2].Relevance)

	assert.Equal(t, aspirasi.StatusCollected, report.Aggregation.Status)
	assert.Equal(t, 2, report.Aggregation.MemberCount)
	assert.Equal(t, "konsensus tercapai", report.Aggregation.Summary)

	assert.Empty(t, report.ActionPlan.Error)
	assert.Equal(t, []string{"RDP"}, report.ActionPlan.Steps)
	assert.Equal(t, "Komisi V", report.ActionPlan.ResponsibleBody)

	// Each of the 5 calls costs 0.001*1 + 0.002*0.5 = 0.002.
	assert.InDelta(t, 0.010, report.TotalCost, 1e-12)
	assert.Equal(t, 3, evalModel.calls)
	assert.Equal(t, 1, aggModel.calls)
	assert.Equal(t, 1, planModel.calls)
}

func TestRun_BatchingPreservesOrderAndWidth(t *testing.T) {
	evalModel := &scriptedModel{
		defaultContent: evaluationHigh,
		delay:          20 * time.Millisecond,
	}
	aggModel := &scriptedModel{defaultContent: aggregationOK}
	planModel := &scriptedModel{defaultContent: actionPlanOK}

	p := newTestPipeline(t, evalModel, aggModel, planModel, WithBatchSize(2))
	report := p.Run(context.Background(), testAspiration, members(5))

	// 5 members with batch size 2 run as batches of 2, 2, 1.
	require.Len(t, report.Evaluations, 5)
	assert.Equal(t, 5, evalModel.calls)
	assert.LessOrEqual(t, evalModel.maxConcurrent, 2)

	// Results stay in member order across batch boundaries.
	for i, e := range report.Evaluations {
		assert.Equal(t, fmt.Sprintf("anggota-%d", i+1), e.MemberID)
		assert.Equal(t, testAspiration.ID, e.AspirationID)
	}
}

func TestRun_EvaluationFailureIsIsolated(t *testing.T) {
	usage := &model.Usage{PromptTokens: 1000, CompletionTokens: 500}
	evalModel := &scriptedModel{
		rules:          []rule{{match: "Anggota 2", err: errors.New("request timed out")}},
		defaultContent: evaluationHigh,
		usage:          usage,
	}
	aggModel := &scriptedModel{defaultContent: aggregationOK, usage: usage}
	planModel := &scriptedModel{defaultContent: actionPlanOK, usage: usage}

	p := newTestPipeline(t, evalModel, aggModel, planModel, WithBatchSize(3))
	report := p.Run(context.Background(), testAspiration, members(3))

	require.Len(t, report.Evaluations, 3)
	failed := report.Evaluations[1]
	assert.Equal(t, "request timed out", failed.Error)
	assert.Equal(t, aspirasi.RelevanceLow, failed.Relevance)
	assert.Zero(t, failed.Cost)

	// The failed member is excluded from aggregation; the run completes.
	assert.Equal(t, aspirasi.StatusCollected, report.Aggregation.Status)
	assert.Equal(t, 2, report.Aggregation.MemberCount)
	assert.Empty(t, report.ActionPlan.Error)
}

func TestRun_TotalEvaluationFailure(t *testing.T) {
	evalModel := &scriptedModel{
		rules: []rule{{match: "Aspirasi", err: errors.New("backend down")}},
	}
	aggModel := &scriptedModel{defaultContent: aggregationOK}
	planModel := &scriptedModel{defaultContent: actionPlanOK}

	p := newTestPipeline(t, evalModel, aggModel, planModel, WithBatchSize(2))
	report := p.Run(context.Background(), testAspiration, members(4))

	require.Len(t, report.Evaluations, 4)
	for _, e := range report.Evaluations {
		assert.Equal(t, "backend down", e.Error)
	}

	// Aggregation naturally reports tidak_relevan without a model call,
	// planning reports its precondition error, the report is complete.
	assert.Equal(t, aspirasi.StatusNotRelevant, report.Aggregation.Status)
	assert.Zero(t, report.Aggregation.MemberCount)
	assert.Zero(t, report.Aggregation.Cost)
	assert.Zero(t, aggModel.calls)

	assert.NotEmpty(t, report.ActionPlan.Error)
	assert.Zero(t, report.ActionPlan.Cost)
	assert.Zero(t, planModel.calls)

	assert.Zero(t, report.TotalCost)
}

func TestRun_NoMembers(t *testing.T) {
	aggModel := &scriptedModel{defaultContent: aggregationOK}
	planModel := &scriptedModel{defaultContent: actionPlanOK}
	p := newTestPipeline(t, &scriptedModel{}, aggModel, planModel)

	report := p.Run(context.Background(), testAspiration, nil)

	assert.Empty(t, report.Evaluations)
	assert.Equal(t, aspirasi.StatusNotRelevant, report.Aggregation.Status)
	assert.NotEmpty(t, report.ActionPlan.Error)
	assert.Zero(t, report.TotalCost)
}

func TestRun_TotalCostSumsAllStages(t *testing.T) {
	evalUsage := &model.Usage{PromptTokens: 1000, CompletionTokens: 1000}  // 0.003 each
	stageUsage := &model.Usage{PromptTokens: 2000, CompletionTokens: 500} // 0.003 each
	evalModel := &scriptedModel{defaultContent: evaluationHigh, usage: evalUsage}
	aggModel := &scriptedModel{defaultContent: aggregationOK, usage: stageUsage}
	planModel := &scriptedModel{defaultContent: actionPlanOK, usage: stageUsage}

	p := newTestPipeline(t, evalModel, aggModel, planModel, WithBatchSize(2))
	report := p.Run(context.Background(), testAspiration, members(2))

	var sum float64
	for _, e := range report.Evaluations {
		sum += e.Cost
	}
	sum += report.Aggregation.Cost + report.ActionPlan.Cost
	assert.InDelta(t, sum, report.TotalCost, 1e-9)
	assert.InDelta(t, 0.012, report.TotalCost, 1e-9)
}
