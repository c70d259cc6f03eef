package run

import (
	"testing"
)

func TestRenderFingerprint_Deterministic(t *testing.T) {
	m1 := NewRenderManifest(42, "random_forest", 5000)
	m2 := NewRenderManifest(42, "random_forest", 5000)

	if m1.Fingerprint != m2.Fingerprint {
		t.Errorf("Fingerprints not identical: %s vs %s", m1.Fingerprint, m2.Fingerprint)
	}
	if m1.RenderID == m2.RenderID {
		t.Errorf("RenderIDs should differ, both %s", m1.RenderID)
	}
	if len(m1.Fingerprint) != 64 {
		t.Errorf("Fingerprint should be hex sha256, got %q", m1.Fingerprint)
	}
	if m1.ShortFingerprint() != m1.Fingerprint[:12] {
		t.Errorf("ShortFingerprint mismatch: %s", m1.ShortFingerprint())
	}
}

func TestRenderFingerprint_Unique(t *testing.T) {
	base := ComputeFingerprint(42, "random_forest", 5000)

	testCases := []struct {
		name string
		fp   string
	}{
		{"different seed", ComputeFingerprint(43, "random_forest", 5000)},
		{"different model", ComputeFingerprint(42, "decision_tree", 5000)},
		{"different lot count", ComputeFingerprint(42, "random_forest", 4999)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fp == base {
				t.Errorf("Fingerprint should differ for %s", tc.name)
			}
		})
	}
}

func TestRenderManifest_Validate(t *testing.T) {
	valid := NewRenderManifest(7, "logistic_regression", 10)
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(m *RenderManifest)
	}{
		{"empty id", func(m *RenderManifest) { m.RenderID = "" }},
		{"zero seed", func(m *RenderManifest) { m.Seed = 0 }},
		{"no model", func(m *RenderManifest) { m.ModelKind = "" }},
		{"no lots", func(m *RenderManifest) { m.LotCount = 0 }},
		{"tampered seed", func(m *RenderManifest) { m.Seed = 8 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := *valid
			tc.mutate(&m)
			if err := m.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}
