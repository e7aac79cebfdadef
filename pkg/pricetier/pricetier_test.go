package pricetier_test

import (
	"math"
	"testing"

	"github.com/Gunvolt24/pricecache/pkg/pricetier"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		price       float64
		wantDisplay string
		wantTier    pricetier.Tier
	}{
		{"zero", 0, "0", pricetier.TierNone},
		{"below_eb", 63.9, "63", pricetier.TierNone},
		{"exact_eb", 64, "1eb", pricetier.TierNone},
		{"hundred", 100, "1eb", pricetier.TierNone},
		{"exact_le", 4096, "1le", pricetier.TierNone},
		{"just_below_green", 8191, "1le", pricetier.TierNone},
		{"green_boundary", 8192, "2le", pricetier.TierGreen},
		{"just_below_orange", 40959, "9le", pricetier.TierGreen},
		{"orange_boundary", 40960, "10le", pricetier.TierOrange},
		{"fifty_thousand", 50000, "12le", pricetier.TierOrange},
		{"just_below_stx", 262143, "63le", pricetier.TierOrange},
		{"stx_boundary", 262144, "1stx", pricetier.TierRed},
		{"many_stx", 262144*5 + 100, "5stx", pricetier.TierRed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			display, tier := pricetier.Classify(tt.price)
			assert.Equal(t, tt.wantDisplay, display)
			assert.Equal(t, tt.wantTier, tier, "tier for %v", tt.price)
		})
	}
}

func TestClassify_TierMonotonic(t *testing.T) {
	t.Parallel()

	prev := pricetier.TierNone
	for p := 0.0; p <= 3*pricetier.Stack; p += 511 {
		_, tier := pricetier.Classify(p)
		if tier < prev {
			t.Fatalf("tier decreased at price=%v: %v < %v", p, tier, prev)
		}
		prev = tier
	}
}

func TestClassify_OutOfContract(t *testing.T) {
	t.Parallel()

	for _, p := range []float64{-1, math.NaN()} {
		display, tier := pricetier.Classify(p)
		assert.Equal(t, "0", display)
		assert.Equal(t, pricetier.TierNone, tier)
	}
}

func TestTier_StringColorParse(t *testing.T) {
	t.Parallel()

	for _, tier := range []pricetier.Tier{pricetier.TierNone, pricetier.TierGreen, pricetier.TierOrange, pricetier.TierRed} {
		got, ok := pricetier.ParseTier(tier.String())
		assert.True(t, ok)
		assert.Equal(t, tier, got)
	}
	assert.Equal(t, uint32(0), pricetier.TierNone.Color())
	assert.Equal(t, pricetier.ColorRed, pricetier.TierRed.Color())

	_, ok := pricetier.ParseTier("purple")
	assert.False(t, ok)
}

func TestVisible(t *testing.T) {
	t.Parallel()

	assert.False(t, pricetier.Visible(pricetier.LiquidEmerald))
	assert.True(t, pricetier.Visible(pricetier.LiquidEmerald+1))
}
