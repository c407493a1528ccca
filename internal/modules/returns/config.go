// Package returns projects windowed savings forward to retirement for the
// NPS and index-fund products.
package returns

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ketulrudani/Self-saving-for-your-retirement/pkg/formulas"
)

// Config is the rate table used by an Engine. It is built once at startup
// and never mutated afterwards.
type Config struct {
	NPSRate              float64            `toml:"nps_rate"`
	IndexRate            float64            `toml:"index_rate"`
	RetirementAge        int                `toml:"retirement_age"`
	FloorYears           int                `toml:"floor_years"`
	DeductionIncomeShare float64            `toml:"deduction_income_share"`
	DeductionCap         float64            `toml:"deduction_cap"`
	Slabs                []formulas.TaxSlab `toml:"slabs"`
}

// DefaultConfig returns the default rate table.
func DefaultConfig() Config {
	return Config{
		NPSRate:              0.0711,
		IndexRate:            0.1449,
		RetirementAge:        60,
		FloorYears:           5,
		DeductionIncomeShare: 0.10,
		DeductionCap:         200_000,
		Slabs:                formulas.DefaultTaxSlabs(),
	}
}

// LoadConfigFile overlays the TOML file at path on DefaultConfig. Keys missing
// from the file keep their defaults; a slabs table replaces the default slabs
// entirely. An empty path returns the defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading rates file: %w", err)
	}

	cfg.Slabs = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing rates file: %w", err)
	}
	if cfg.Slabs == nil {
		cfg.Slabs = formulas.DefaultTaxSlabs()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid rates file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the rate table is usable.
func (c Config) Validate() error {
	var errs []error

	if c.NPSRate <= -1 {
		errs = append(errs, fmt.Errorf("nps_rate must be greater than -1"))
	}
	if c.IndexRate <= -1 {
		errs = append(errs, fmt.Errorf("index_rate must be greater than -1"))
	}
	if c.RetirementAge <= 0 {
		errs = append(errs, fmt.Errorf("retirement_age must be positive"))
	}
	if c.FloorYears < 0 {
		errs = append(errs, fmt.Errorf("floor_years must not be negative"))
	}
	if c.DeductionIncomeShare < 0 || c.DeductionIncomeShare > 1 {
		errs = append(errs, fmt.Errorf("deduction_income_share must be between 0 and 1"))
	}
	if c.DeductionCap < 0 {
		errs = append(errs, fmt.Errorf("deduction_cap must not be negative"))
	}
	if len(c.Slabs) == 0 {
		errs = append(errs, fmt.Errorf("at least one tax slab is required"))
	}
	// Bands must tile [0, inf) without gaps or overlap; only the last may be open-ended.
	for i, slab := range c.Slabs {
		switch {
		case i == 0 && slab.Lower != 0:
			errs = append(errs, fmt.Errorf("slab 0: lower must be 0"))
		case i > 0 && slab.Lower != c.Slabs[i-1].Upper:
			errs = append(errs, fmt.Errorf("slab %d: lower must equal the upper of slab %d", i, i-1))
		}
		last := i == len(c.Slabs)-1
		if slab.Upper == 0 && !last {
			errs = append(errs, fmt.Errorf("slab %d: only the last slab may be open-ended", i))
		}
		if slab.Upper != 0 && slab.Upper <= slab.Lower {
			errs = append(errs, fmt.Errorf("slab %d: upper must be above lower", i))
		}
		if slab.Rate < 0 || slab.Rate > 1 {
			errs = append(errs, fmt.Errorf("slab %d: rate must be between 0 and 1", i))
		}
	}

	return errors.Join(errs...)
}
