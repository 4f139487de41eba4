package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ressKim-io/promptclf/internal/usecase"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		datasetName string
		limit       int
		offset      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored evaluation runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			uc, err := ctx.historyUsecase(ctx.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			page, err := uc.History(cmd.Context(), datasetName, limit, offset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(page.Evaluations) == 0 {
				fmt.Fprintln(out, "No evaluation runs found")
				return nil
			}
			fmt.Fprintln(out, renderHistory(page.Evaluations))
			if page.HasMore {
				fmt.Fprintf(out, "Showing %d of %d runs; use --offset %d for more\n",
					len(page.Evaluations), page.Total, page.Offset+page.Limit)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetName, "dataset", "d", "", "Only runs of this dataset")
	cmd.Flags().IntVar(&limit, "limit", usecase.DefaultHistoryLimit, "Maximum runs to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Runs to skip")

	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a stored run with its predictions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			uc, err := ctx.historyUsecase(ctx.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			detail, err := uc.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %s %s, %s\n", detail.RunID, detail.Dataset, detail.Mode, detail.Status)
			fmt.Fprintf(out, "Accuracy: %s (%d/%d)\n", formatPercent(detail.Accuracy), detail.CorrectCount, detail.CompletedRecords)
			if detail.Error != "" {
				fmt.Fprintf(out, "Error: %s\n", detail.Error)
			}
			fmt.Fprintln(out, renderPredictions(detail.Predictions))
			return nil
		},
	}
}
