package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/returns"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings"
	"github.com/ketulrudani/Self-saving-for-your-retirement/pkg/formulas"
)

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Round expenses up to the next 100 and report the remanent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req savings.ParseRequest
			if err := readInput(cmd, args, &req); err != nil {
				return err
			}
			txs, err := savings.Parse(req)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd, txs)
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Split transactions into valid and invalid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req savings.ValidatorRequest
			if err := readInput(cmd, args, &req); err != nil {
				return err
			}
			resp, err := savings.Validate(req)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd, resp)
		},
	}
}

func newFilterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filter [file]",
		Short: "Apply q, p and k periods to transactions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req savings.FilterRequest
			if err := readInput(cmd, args, &req); err != nil {
				return err
			}
			result, err := savings.Filter(req)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd, result.Response)
		},
	}
}

func newReturnsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "returns nps|index [file]",
		Short:     "Project savings per k window to retirement",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{string(returns.ProductNPS), string(returns.ProductIndex)},
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := returns.ParseProduct(args[0])
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			var req returns.Request
			if err := readInput(cmd, args[1:], &req); err != nil {
				return err
			}

			start := time.Now()
			result, err := engine.Calculate(req, product)
			if err != nil {
				return err
			}
			opts.log.Info().
				Str("product", string(product)).
				Int("windows", len(result.Windows)).
				Dur("duration", time.Since(start)).
				Msg("Projection complete")

			return opts.writeJSON(cmd, result.Response)
		},
	}
}

// TaxReport is the output of the tax command
type TaxReport struct {
	AnnualIncome float64 `json:"annualIncome"`
	Tax          float64 `json:"tax"`
	Invested     float64 `json:"invested"`
	Deduction    float64 `json:"deduction"`
	TaxBenefit   float64 `json:"taxBenefit"`
}

func newTaxCmd(opts *options) *cobra.Command {
	var invested float64

	cmd := &cobra.Command{
		Use:   "tax <annual-income>",
		Short: "Show income tax and the NPS deduction for an investment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := strconv.ParseFloat(args[0], 64)
			if err != nil || income < 0 {
				return fmt.Errorf("annual income must be a non-negative number, got %q", args[0])
			}
			if invested < 0 {
				return fmt.Errorf("--invested must be non-negative")
			}

			engine, err := opts.engine()
			if err != nil {
				return err
			}

			deduction := engine.Deduction(invested, income)
			return opts.writeJSON(cmd, TaxReport{
				AnnualIncome: income,
				Tax:          formulas.Round2(engine.TaxOnIncome(income)),
				Invested:     invested,
				Deduction:    formulas.Round2(deduction),
				TaxBenefit:   formulas.Round2(engine.TaxBenefit(income, deduction)),
			})
		},
	}
	cmd.Flags().Float64Var(&invested, "invested", 0, "Amount invested in NPS during the year")
	return cmd
}
