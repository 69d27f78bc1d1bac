//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

package aspirasi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelevance(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect Relevance
	}{
		{name: "high", input: "Tinggi", expect: RelevanceHigh},
		{name: "high lowercase", input: "tinggi", expect: RelevanceHigh},
		{name: "medium", input: "Sedang", expect: RelevanceMedium},
		{name: "low", input: "Rendah", expect: RelevanceLow},
		{name: "low lowercase", input: "rendah", expect: RelevanceLow},
		{name: "padded", input: "  TINGGI  ", expect: RelevanceHigh},
		{name: "unknown defaults low", input: "sangat penting", expect: RelevanceLow},
		{name: "empty defaults low", input: "", expect: RelevanceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ParseRelevance(tt.input))
		})
	}
}

func TestRelevanceRelevant(t *testing.T) {
	assert.True(t, RelevanceHigh.Relevant())
	assert.True(t, RelevanceMedium.Relevant())
	assert.False(t, RelevanceLow.Relevant())
	assert.False(t, Relevance("").Relevant())
}

func TestMemberPromptContext(t *testing.T) {
	m := Member{
		Name:         "Siti Rahayu",
		Party:        "Fraksi Amanah",
		Constituency: "Jawa Barat II",
		Commission:   "Komisi V",
		Background:   "Mantan kepala dinas PU",
	}
	ctx := m.PromptContext()
	assert.Contains(t, ctx, "Nama: Siti Rahayu")
	assert.Contains(t, ctx, "Fraksi: Fraksi Amanah")
	assert.Contains(t, ctx, "Daerah Pemilihan: Jawa Barat II")
	assert.Contains(t, ctx, "Komisi: Komisi V")
	assert.Contains(t, ctx, "Latar Belakang: Mantan kepala dinas PU")

	// Background is optional.
	m.Background = ""
	assert.NotContains(t, m.PromptContext(), "Latar Belakang")
}

func TestNewAspiration(t *testing.T) {
	a := NewAspiration("Perbaikan jalan desa", "infrastruktur", "tinggi")
	assert.NotEmpty(t, a.ID)
	assert.Contains(t, a.PromptContext(), "Isi Aspirasi: Perbaikan jalan desa")
	assert.Contains(t, a.PromptContext(), "Kategori: infrastruktur")
	assert.Contains(t, a.PromptContext(), "Prioritas: tinggi")
}

func TestEvaluationResultOK(t *testing.T) {
	assert.True(t, EvaluationResult{}.OK())
	assert.False(t, EvaluationResult{Error: "timeout"}.OK())
}

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
anggota:
  - id: anggota-1
    nama: Siti Rahayu
    fraksi: Fraksi Amanah
    dapil: Jawa Barat II
    komisi: Komisi V
  - nama: Budi Santoso
    fraksi: Fraksi Pembangunan
    dapil: Sumatera Utara I
    komisi: Komisi X
`), 0o600))

	members, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "anggota-1", members[0].ID)
	assert.Equal(t, "Siti Rahayu", members[0].Name)
	// Missing ids are generated.
	assert.NotEmpty(t, members[1].ID)
	assert.Equal(t, "Budi Santoso", members[1].Name)
}

func TestLoadRoster_Errors(t *testing.T) {
	_, err := LoadRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("anggota: []\n"), 0o600))
	_, err = LoadRoster(path)
	assert.Error(t, err)
}
