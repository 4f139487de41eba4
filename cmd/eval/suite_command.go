package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ressKim-io/promptclf/internal/usecase"
)

func newSuiteCommand(ctx *commandContext) *cobra.Command {
	var (
		file  string
		local bool
	)

	cmd := &cobra.Command{
		Use:   "suite",
		Short: "Run a list of evaluations (Yelp Polarity, AG News and TREC by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			suite := usecase.DefaultSuite()
			if file != "" {
				loaded, err := usecase.LoadSuite(file)
				if err != nil {
					return err
				}
				suite = loaded
			}

			log := ctx.logger(cmd.ErrOrStderr())
			uc, err := ctx.evaluationUsecase(cmd.Context(), local, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			results := make([]namedResult, 0, len(suite.Evaluations))
			for i, input := range suite.Inputs() {
				name := suite.Evaluations[i].DisplayName()
				output, err := uc.Evaluate(cmd.Context(), input)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Fprintln(out, usecase.FormatAccuracy(name, output))
				results = append(results, namedResult{name: name, output: output})
			}

			fmt.Fprintln(out, renderResults(results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Suite YAML file")
	cmd.Flags().BoolVar(&local, "local", false, "Call the completion provider in-process instead of the service")

	return cmd
}
