package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resultgate/internal/config"
	"resultgate/internal/evidence"
	"resultgate/internal/gates"
	"resultgate/internal/report"
)

const (
	defaultInputPath  = "results.jsonl"
	defaultOutputPath = "validated_results.jsonl"
)

// runValidation is the batch entry point: read, judge, annotate, write,
// summarize. It returns an error when any record failed, which is what
// turns into the non-zero exit code CI gates on.
func runValidation(cmd *cobra.Command, args []string) error {
	inputPath := defaultInputPath
	outputPath := defaultOutputPath
	if len(args) > 0 {
		inputPath = args[0]
	}
	if len(args) > 1 {
		outputPath = args[1]
	}

	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger.Info("validation run starting",
		zap.String("run_id", runID),
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.String("strictness", string(cfg.Strictness)))

	lines, err := evidence.ReadLines(inputPath)
	if err != nil {
		return err
	}

	validator := gates.NewValidator(cfg)
	for i := range lines {
		if lines[i].Err != nil {
			logger.Warn("unparseable record",
				zap.String("run_id", runID),
				zap.Int("line", lines[i].Number),
				zap.Error(lines[i].Err))
			continue
		}

		annotated := validator.Validate(lines[i].Record)
		lines[i].Record = annotated

		logger.Debug("record validated",
			zap.String("run_id", runID),
			zap.String("case_id", annotated.CaseID),
			zap.Bool("passed", annotated.Passed),
			zap.String("failure_reason", string(annotated.FailureReason)))
	}

	if err := evidence.WriteLines(outputPath, lines); err != nil {
		return err
	}

	summary := report.Aggregate(lines)
	fmt.Fprintln(cmd.OutOrStdout(), report.Render(summary))

	logger.Info("validation run complete",
		zap.String("run_id", runID),
		zap.Int("total", summary.Total),
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed))

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d records failed validation", summary.Failed, summary.Total)
	}
	return nil
}
