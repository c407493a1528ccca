package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProduct(t *testing.T) {
	p, err := ParseProduct("nps")
	require.NoError(t, err)
	assert.Equal(t, ProductNPS, p)

	p, err = ParseProduct(" Index ")
	require.NoError(t, err)
	assert.Equal(t, ProductIndex, p)

	_, err = ParseProduct("bonds")
	assert.Error(t, err)
}

func TestEngine_Helpers(t *testing.T) {
	e := NewEngine(DefaultConfig())

	assert.Equal(t, 31, e.YearsToHorizon(29))
	assert.Equal(t, 5, e.YearsToHorizon(60))
	assert.Equal(t, 5, e.YearsToHorizon(90))
	assert.InDelta(t, 10_000.0, e.TaxOnIncome(800_000), 1e-6)
	assert.InDelta(t, 60_000.0, e.Deduction(200_000, 600_000), 1e-9)
	assert.InDelta(t, 200_000.0, e.Deduction(300_000, 3_000_000), 1e-9)
	assert.Equal(t, 0.0711, e.Rate(ProductNPS))
	assert.Equal(t, 0.1449, e.Rate(ProductIndex))
}

func TestEngine_ProjectReturn_NPS(t *testing.T) {
	e := NewEngine(DefaultConfig())

	p := e.ProjectReturn(145, 29, 0.055, ProductNPS, 600_000)
	assert.Equal(t, 31, p.Years)
	assert.InDelta(t, 1219.45, p.FutureValue, 0.5)
	assert.InDelta(t, 86.88, p.Value, 2)
	require.NotNil(t, p.TaxBenefit)
	assert.Equal(t, 0.0, *p.TaxBenefit)
}

func TestEngine_ProjectReturn_NPSWithTaxBenefit(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// 1.2M income: 10% share is 120k, so the full 100k is deductible
	// and falls in the 15% slab.
	p := e.ProjectReturn(100_000, 30, 0.05, ProductNPS, 1_200_000)
	require.NotNil(t, p.TaxBenefit)
	assert.InDelta(t, 15_000.0, *p.TaxBenefit, 1e-6)
}

func TestEngine_ProjectReturn_Index(t *testing.T) {
	e := NewEngine(DefaultConfig())

	p := e.ProjectReturn(145, 29, 0.055, ProductIndex, 600_000)
	assert.InDelta(t, 1829.5, p.Value, 30)
	assert.Nil(t, p.TaxBenefit)
	assert.Greater(t, p.FutureValue, p.Value)
}

func TestNewEngine_CopiesConfig(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	cfg.Slabs[4].Rate = 0.99
	assert.Equal(t, 0.30, e.Config().Slabs[4].Rate)

	got := e.Config()
	got.Slabs[4].Rate = 0.5
	assert.Equal(t, 0.30, e.Config().Slabs[4].Rate)
}
