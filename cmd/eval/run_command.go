package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ressKim-io/promptclf/internal/usecase"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		datasetName string
		displayName string
		fewShot     bool
		shots       int
		maxExamples int
		local       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate one dataset zero-shot or few-shot",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg := ctx.config
			if !cmd.Flags().Changed("shots") {
				shots = cfg.Eval.Shots
			}
			if !cmd.Flags().Changed("max-examples") {
				maxExamples = cfg.Eval.MaxExamples
			}
			input := &usecase.EvaluateInput{Dataset: datasetName, MaxExamples: maxExamples}
			if fewShot {
				input.Shots = shots
			}
			if displayName == "" {
				displayName = knownDisplayName(datasetName)
			}

			log := ctx.logger(cmd.ErrOrStderr())
			uc, err := ctx.evaluationUsecase(cmd.Context(), local, log)
			if err != nil {
				return err
			}

			output, err := uc.Evaluate(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, usecase.FormatAccuracy(displayName, output))
			fmt.Fprintln(out, renderResults([]namedResult{{name: displayName, output: output}}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetName, "dataset", "d", "", "Dataset name, e.g. yelp_polarity, ag_news, trec")
	cmd.Flags().StringVar(&displayName, "name", "", "Name used in the result line")
	cmd.Flags().BoolVar(&fewShot, "few-shot", false, "Include examples from the train split")
	cmd.Flags().IntVar(&shots, "shots", usecase.DefaultShots, "Number of train examples in few-shot mode")
	cmd.Flags().IntVar(&maxExamples, "max-examples", usecase.DefaultMaxExamples, "Number of test records to score")
	cmd.Flags().BoolVar(&local, "local", false, "Call the completion provider in-process instead of the service")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

// knownDisplayName returns the display name from the default suite, or the dataset id
func knownDisplayName(dataset string) string {
	for _, e := range usecase.DefaultSuite().Evaluations {
		if e.Dataset == dataset {
			return e.DisplayName()
		}
	}
	return dataset
}
