package testkit

import (
	"context"
	"math/rand"

	"pharmarisk/domain/inventory"
	"pharmarisk/ports"
)

// TestKit bundles the simulated data sources the dashboard renders from
type TestKit struct {
	rng    *RNGAdapter
	config InventoryGeneratorConfig
}

// NewTestKit creates a test kit generating lotCount lots per render
func NewTestKit(lotCount int) *TestKit {
	config := DefaultInventoryConfig()
	if lotCount > 0 {
		config.LotCount = lotCount
	}
	return &TestKit{rng: &RNGAdapter{}, config: config}
}

// RNGAdapter returns the seeded RNG port
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return t.rng
}

// GenerateLots synthesizes the mock inventory for one seed
func (t *TestKit) GenerateLots(ctx context.Context, seed int64) ([]inventory.Lot, error) {
	rng, err := t.rng.SeededStream(ctx, "inventory", seed)
	if err != nil {
		return nil, err
	}
	config := t.config
	config.Seed = seed
	return NewInventoryGenerator(config, rng).GenerateLots()
}

// LotCount is how many lots each render holds
func (t *TestKit) LotCount() int {
	return t.config.LotCount
}

// RNGAdapter implements the RNGPort interface
type RNGAdapter struct{}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed + int64(hashString(name)))), nil
}

// NewSeed draws a fresh positive seed
func (r *RNGAdapter) NewSeed() int64 {
	for {
		if seed := rand.Int63(); seed != 0 {
			return seed
		}
	}
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2
	}
	return hash
}
