package testkit

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"pharmarisk/domain/inventory"
)

// InventoryGeneratorConfig configures the mock inventory generator.
// Ranges are half-open: [Min, Max).
type InventoryGeneratorConfig struct {
	LotCount   int     `json:"lot_count"`
	StockMin   int     `json:"stock_min"`
	StockMax   int     `json:"stock_max"`
	DaysMin    int     `json:"days_min"`
	DaysMax    int     `json:"days_max"`
	RateMin    int     `json:"rate_min"`
	RateMax    int     `json:"rate_max"`
	UnitCostLo float64 `json:"unit_cost_lo"`
	UnitCostHi float64 `json:"unit_cost_hi"`
	Seed       int64   `json:"seed"`
}

// DefaultInventoryConfig returns the distributions the dashboard simulates
func DefaultInventoryConfig() InventoryGeneratorConfig {
	return InventoryGeneratorConfig{
		LotCount:   5000,
		StockMin:   100,
		StockMax:   8000,
		DaysMin:    1,
		DaysMax:    730,
		RateMin:    1,
		RateMax:    70,
		UnitCostLo: 20,
		UnitCostHi: 700,
		Seed:       42,
	}
}

// Validate checks that every range is non-empty
func (c InventoryGeneratorConfig) Validate() error {
	if c.LotCount <= 0 {
		return fmt.Errorf("lot count must be positive, got %d", c.LotCount)
	}
	ranges := []struct {
		name     string
		min, max int
	}{
		{"stock", c.StockMin, c.StockMax},
		{"days", c.DaysMin, c.DaysMax},
		{"rate", c.RateMin, c.RateMax},
	}
	for _, r := range ranges {
		if r.max <= r.min {
			return fmt.Errorf("%s range [%d, %d) is empty", r.name, r.min, r.max)
		}
	}
	if c.UnitCostHi <= c.UnitCostLo {
		return fmt.Errorf("unit cost range [%.2f, %.2f) is empty", c.UnitCostLo, c.UnitCostHi)
	}
	return nil
}

// InventoryGenerator generates simulated pharmaceutical lots
type InventoryGenerator struct {
	config InventoryGeneratorConfig
	rng    *rand.Rand
}

// NewInventoryGenerator creates a generator. A nil rng seeds one from config.Seed.
func NewInventoryGenerator(config InventoryGeneratorConfig, rng *rand.Rand) *InventoryGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(config.Seed))
	}
	return &InventoryGenerator{config: config, rng: rng}
}

// GenerateLots draws LotCount lots and labels them with the expiry-risk rule
func (g *InventoryGenerator) GenerateLots() ([]inventory.Lot, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	lots := make([]inventory.Lot, g.config.LotCount)
	for i := range lots {
		stock := g.randomInt(g.config.StockMin, g.config.StockMax)
		days := g.randomInt(g.config.DaysMin, g.config.DaysMax)
		rate := g.randomInt(g.config.RateMin, g.config.RateMax)
		lots[i] = inventory.NewLot(stock, days, rate, g.randomUnitCost())
	}
	return lots, nil
}

func (g *InventoryGenerator) randomInt(min, max int) int {
	return min + g.rng.Intn(max-min)
}

func (g *InventoryGenerator) randomUnitCost() decimal.Decimal {
	cost := g.config.UnitCostLo + g.rng.Float64()*(g.config.UnitCostHi-g.config.UnitCostLo)
	return decimal.NewFromFloat(cost).Round(2)
}
