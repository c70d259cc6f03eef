// Package run describes one dashboard render well enough to reproduce it.
package run

import (
	"crypto/sha256"
	"fmt"
	"time"

	"pharmarisk/domain/core"
)

// RenderManifest identifies the inputs of one render. Two renders with the
// same fingerprint show the same lots and the same predictions.
type RenderManifest struct {
	RenderID    core.ID   `json:"render_id"`
	Seed        int64     `json:"seed"`
	ModelKind   string    `json:"model_kind"`
	LotCount    int       `json:"lot_count"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRenderManifest stamps a render with a fresh ID and its fingerprint
func NewRenderManifest(seed int64, modelKind string, lotCount int) *RenderManifest {
	return &RenderManifest{
		RenderID:    core.NewID(),
		Seed:        seed,
		ModelKind:   modelKind,
		LotCount:    lotCount,
		Fingerprint: ComputeFingerprint(seed, modelKind, lotCount),
		CreatedAt:   time.Now().UTC(),
	}
}

// ComputeFingerprint hashes the determinism parameters of a render
func ComputeFingerprint(seed int64, modelKind string, lotCount int) string {
	data := fmt.Sprintf("seed:%d|model:%s|lots:%d", seed, modelKind, lotCount)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ShortFingerprint is the first 12 hex digits, enough for display
func (m *RenderManifest) ShortFingerprint() string {
	if len(m.Fingerprint) < 12 {
		return m.Fingerprint
	}
	return m.Fingerprint[:12]
}

// Validate checks if the manifest is complete
func (m *RenderManifest) Validate() error {
	if m.RenderID.IsEmpty() {
		return fmt.Errorf("render manifest: render_id cannot be empty")
	}
	if m.Seed == 0 {
		return fmt.Errorf("render manifest: seed cannot be zero")
	}
	if m.ModelKind == "" {
		return fmt.Errorf("render manifest: model_kind cannot be empty")
	}
	if m.LotCount <= 0 {
		return fmt.Errorf("render manifest: lot_count must be positive")
	}
	if m.Fingerprint != ComputeFingerprint(m.Seed, m.ModelKind, m.LotCount) {
		return fmt.Errorf("render manifest: fingerprint does not match its parameters")
	}
	return nil
}
