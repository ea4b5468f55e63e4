package main

import (
	"fmt"

	"item-pairs/internal/repository"
	"item-pairs/internal/similarity"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Report model accuracy on labeled pairs",
	Long: `Score labeled pairs with the saved model (or the fallback estimator with
--fallback) and print accuracy and the confusion matrix.

Examples:
  pairctl evaluate --csv data/labeled.csv
  pairctl evaluate --csv data/labeled.csv --fallback`,
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		fallback, _ := cmd.Flags().GetBool("fallback")
		exact, _ := cmd.Flags().GetBool("label-exact-match")
		if exact && csvPath == "" {
			return fmt.Errorf("--label-exact-match needs --csv")
		}

		cfg, appLogger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer appLogger.Sync()

		samples, err := loadSamples(csvPath, exact)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if fallback {
			printEvaluation(out, "Fallback estimator", similarity.Evaluate(similarity.FallbackEstimator{}, samples))
			return nil
		}

		model, err := repository.NewModelFileRepository(cfg.Model.Path, appLogger).Load()
		if err != nil {
			return fmt.Errorf("failed to load model from %s: %w", cfg.Model.Path, err)
		}
		ev, err := similarity.EvaluateModel(model, samples)
		if err != nil {
			return err
		}
		printEvaluation(out, fmt.Sprintf("Model %s", model.ID), ev)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().String("csv", "", "Labeled file; defaults to the synthetic pairs")
	evaluateCmd.Flags().Bool("fallback", false, "Evaluate the fallback estimator instead of the saved model")
	evaluateCmd.Flags().Bool("label-exact-match", false, "Label an unlabeled pair file by exact title match")
	rootCmd.AddCommand(evaluateCmd)
}
