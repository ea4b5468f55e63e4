package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"item-pairs/internal/dataset"
	"item-pairs/internal/repository"
	"item-pairs/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var seedCmd = &cobra.Command{
	Use:   "seed --csv FILE [--csv FILE...]",
	Short: "Reconcile pair files into the store",
	Long: `Reconcile every ITEM_A,TITLE_A,ITEM_B,TITLE_B row of the given files
through the same state machine the server uses. Files whose content hash
is already in the seed cache are skipped unless --force is given.

Examples:
  pairctl seed --csv data/pairs.csv
  pairctl seed --csv a.csv --csv b.csv --workers 8
  STORE_BACKEND=sqlite pairctl seed --csv data/pairs.csv --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, _ := cmd.Flags().GetStringArray("csv")
		workers, _ := cmd.Flags().GetInt("workers")
		cachePath, _ := cmd.Flags().GetString("cache")
		force, _ := cmd.Flags().GetBool("force")
		if len(files) == 0 {
			return fmt.Errorf("at least one --csv file is required")
		}
		if workers < 1 {
			return fmt.Errorf("--workers must be positive, got %d", workers)
		}

		cfg, appLogger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer appLogger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, closeStore, err := repository.OpenStore(ctx, cfg, appLogger)
		if err != nil {
			return err
		}
		defer closeStore()

		model, err := openModel(cfg, "", appLogger)
		if err != nil {
			return err
		}
		if err := model.bootstrap(ctx); err != nil {
			printWarning(os.Stderr, "Model bootstrap failed, scoring with the fallback estimator: %v", err)
		}
		pairs := service.NewPairService(store, model.detector, cfg.Reconcile.MaxAttempts, appLogger.Named("pairs"))

		cache, err := loadSeedCache(cachePath)
		if err != nil {
			appLogger.Warn("Failed to load cache, will process all files", zap.Error(err))
			cache = &SeedCache{ProcessedFiles: make(map[string]ProcessedFile)}
		}

		out := cmd.OutOrStdout()
		for _, file := range files {
			path, err := filepath.Abs(file)
			if err != nil {
				return err
			}
			hash, err := fileHash(path)
			if err != nil {
				return err
			}
			if pf, ok := cache.seen(path, hash); ok && !force {
				printSuccess(out, "%s already seeded at %s, skipping", file, pf.ProcessedAt.Format(time.RFC3339))
				continue
			}

			stats, err := seedFile(ctx, pairs, path, workers, appLogger)
			if err != nil {
				return err
			}
			printStatus(out, filepath.Base(file), "%d rows: %s created, %s updated, %d skipped, %s failed",
				stats.rows, green(stats.created.Load()), yellow(stats.updated.Load()),
				stats.skipped.Load(), red(stats.failed.Load()))

			if stats.failed.Load() == 0 {
				cache.mark(path, hash, stats.rows, time.Now().UTC())
			} else {
				printWarning(out, "%s had failures and stays out of the cache", file)
			}
		}

		if err := cache.save(cachePath); err != nil {
			appLogger.Warn("Failed to save cache", zap.Error(err))
		}
		return nil
	},
}

type seedStats struct {
	rows                              int
	created, updated, skipped, failed atomic.Int64
}

// seedFile reconciles every row of path with at most workers in flight.
// Row failures are counted and logged; only cancellation aborts the file.
func seedFile(ctx context.Context, pairs *service.PairService, path string, workers int, logger *zap.Logger) (*seedStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	records, err := dataset.LoadPairsCSV(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	stats := &seedStats{rows: len(records)}
	source := "csv:" + filepath.Base(path)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			res, err := pairs.Reconcile(gCtx, rec.ItemA, rec.ItemB, source)
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				stats.failed.Add(1)
				logger.Error("Failed to reconcile row",
					zap.String("file", path),
					zap.Int("line", rec.Line),
					zap.Error(err),
				)
				return nil
			}
			switch res.Action {
			case service.ActionCreated:
				stats.created.Add(1)
			case service.ActionUpdated:
				stats.updated.Add(1)
			default:
				stats.skipped.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	logger.Info("Pair file seeded",
		zap.String("file", path),
		zap.Int("rows", stats.rows),
		zap.Int64("created", stats.created.Load()),
		zap.Int64("updated", stats.updated.Load()),
		zap.Int64("skipped", stats.skipped.Load()),
		zap.Int64("failed", stats.failed.Load()),
	)
	return stats, nil
}

func init() {
	seedCmd.Flags().StringArray("csv", nil, "Pair file with ITEM_A,TITLE_A,ITEM_B,TITLE_B columns (repeatable)")
	seedCmd.Flags().Int("workers", 4, "Rows reconciled concurrently")
	seedCmd.Flags().String("cache", filepath.Join("data", ".seed_cache.json"), "Processed-file cache")
	seedCmd.Flags().Bool("force", false, "Reprocess files already in the cache")
	rootCmd.AddCommand(seedCmd)
}
