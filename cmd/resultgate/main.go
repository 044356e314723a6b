// Command resultgate is the CI gate over end-to-end test evidence.
// It reads a JSONL results log, re-judges every record through the
// result-validation gate pipeline, writes the annotated log back out and
// exits non-zero unless the batch is entirely green.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "resultgate [input] [output]",
	Short: "resultgate - fail-closed oracle for e2e test results",
	Long: `resultgate validates end-to-end test evidence records.

A bare "200 OK" is never trusted. Each record is re-judged through four
ordered gates (transport, semantic, state proof, data proof) or, for
negative controls, through the expected-rejection path. The annotated
records are written back out and the run fails unless every record
passed - "must be entirely green to proceed".

Arguments:
  input   results log, one JSON record per line (default results.jsonl)
  output  annotated log (default validated_results.jsonl)

Configuration is read from resultgate.yaml (or $RESULTGATE_CONFIG);
set RESULTGATE_VERBOSE=1 for debug logging.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if os.Getenv("RESULTGATE_VERBOSE") != "" {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runValidation,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
