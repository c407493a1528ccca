// Package cli implements the autosave command line tool, an offline front end
// to the same savings and projection logic the HTTP API serves.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/returns"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/utils"
	"github.com/ketulrudani/Self-saving-for-your-retirement/pkg/logger"
)

type options struct {
	ratesFile string
	pretty    bool
	logLevel  string
	log       zerolog.Logger
}

// NewRootCmd builds the autosave command tree
func NewRootCmd() *cobra.Command {
	opts := &options{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "autosave",
		Short:         "Retirement auto-savings calculator",
		Long:          "Round expenses up, apply savings rules and project retirement returns from JSON input.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.log = logger.New(logger.Config{
				Level:  opts.logLevel,
				Pretty: opts.pretty,
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	root.PersistentFlags().StringVar(&opts.ratesFile, "rates", "", "TOML rate table overriding the default rates and tax slabs")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Indent JSON output and use console log format")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newParseCmd(opts),
		newValidateCmd(opts),
		newFilterCmd(opts),
		newReturnsCmd(opts),
		newTaxCmd(opts),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// engine builds a projection engine from --rates
func (o *options) engine() (*returns.Engine, error) {
	cfg, err := returns.LoadConfigFile(o.ratesFile)
	if err != nil {
		return nil, err
	}
	if o.ratesFile != "" {
		o.log.Debug().Str("file", o.ratesFile).Msg("Loaded rate table")
	}
	return returns.NewEngine(cfg), nil
}

// readInput decodes JSON from the file named in args, or stdin when absent or "-"
func readInput(cmd *cobra.Command, args []string, dst interface{}) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	return utils.DecodeJSONReader(in, dst)
}

func (o *options) writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
