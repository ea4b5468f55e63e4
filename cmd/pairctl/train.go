package main

import (
	"context"
	"fmt"
	"os"

	"item-pairs/internal/dataset"
	"item-pairs/internal/service"
	"item-pairs/internal/similarity"

	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the similarity model and save the artifact",
	Long: `Train a model from a labeled CSV (item_a_title,item_b_title,is_similar)
or, without --csv, from the built-in synthetic pairs. Samples are shuffled
and split into training and validation sets; the artifact is written to
MODEL_PATH.

--label-exact-match reads an unlabeled ITEM_A,TITLE_A,ITEM_B,TITLE_B file
and labels a pair similar only when its titles match exactly after
normalisation. This is a crude heuristic; prefer human labels.

Examples:
  pairctl train
  pairctl train --csv data/labeled.csv --params params.yaml
  pairctl train --csv data/pairs.csv --label-exact-match --split 0.9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		paramsPath, _ := cmd.Flags().GetString("params")
		split, _ := cmd.Flags().GetFloat64("split")
		seed, _ := cmd.Flags().GetInt64("seed")
		exact, _ := cmd.Flags().GetBool("label-exact-match")
		if split <= 0 || split > 1 {
			return fmt.Errorf("--split must be in (0, 1], got %g", split)
		}
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
		train, validation := dataset.Split(samples, split, seed)

		model, err := openModel(cfg, paramsPath, appLogger)
		if err != nil {
			return err
		}
		report, err := model.training.Train(context.Background(), service.TrainRequest{
			Training:   train,
			Validation: validation,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "Model %s saved to %s", report.ModelID, model.repo.Path())
		printStatus(out, "Training samples", "%d", report.TrainingSamples)
		printStatus(out, "Validation samples", "%d", report.ValidationSamples)
		printStatus(out, "Vocabulary", "%d terms", report.VocabularySize)
		printStatus(out, "Trees", "%d", report.Trees)
		printStatus(out, "Duration", "%s", report.Duration)

		saved, err := model.repo.Load()
		if err != nil {
			return err
		}
		trainEval, err := similarity.EvaluateModel(saved, train)
		if err != nil {
			return err
		}
		printEvaluation(out, "Training set", trainEval)
		if report.Validation != nil {
			printEvaluation(out, "Validation set", *report.Validation)
		}
		return nil
	},
}

// loadSamples reads labeled samples from path, or returns the synthetic set
// when path is empty.
func loadSamples(path string, exactMatch bool) ([]similarity.TrainingSample, error) {
	if path == "" {
		return dataset.SyntheticSamples(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if !exactMatch {
		return dataset.LoadLabeledCSV(f)
	}
	records, err := dataset.LoadPairsCSV(f)
	if err != nil {
		return nil, err
	}
	return dataset.LabelByExactMatch(records), nil
}

func init() {
	trainCmd.Flags().String("csv", "", "Labeled training file; defaults to the synthetic pairs")
	trainCmd.Flags().String("params", "", "YAML file of training parameters")
	trainCmd.Flags().Float64("split", 0.8, "Fraction of samples used for training")
	trainCmd.Flags().Int64("seed", 42, "Shuffle seed for the split")
	trainCmd.Flags().Bool("label-exact-match", false, "Label an unlabeled pair file by exact title match")
	rootCmd.AddCommand(trainCmd)
}
