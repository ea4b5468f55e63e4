package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"item-pairs/internal/dataset"
	"item-pairs/internal/dto"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var replayCmd = &cobra.Command{
	Use:   "replay --csv FILE --api-url URL",
	Short: "Compare every pair of a file against a running server",
	Long: `Send each ITEM_A,TITLE_A,ITEM_B,TITLE_B row to POST /items/compare of a
running server, at most --rps requests per second, and write one report
row per pair. Nothing is stored by the server.

Examples:
  pairctl replay --csv data/pairs.csv --api-url http://localhost:8080
  pairctl replay --csv data/pairs.csv --api-url http://localhost:8080 --rps 20 --out report.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		apiURL, _ := cmd.Flags().GetString("api-url")
		rps, _ := cmd.Flags().GetFloat64("rps")
		outPath, _ := cmd.Flags().GetString("out")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if csvPath == "" || apiURL == "" {
			return fmt.Errorf("--csv and --api-url are required")
		}
		if rps <= 0 {
			return fmt.Errorf("--rps must be positive, got %g", rps)
		}

		_, appLogger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer appLogger.Sync()

		f, err := os.Open(csvPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", csvPath, err)
		}
		records, err := dataset.LoadPairsCSV(f)
		f.Close()
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
			defer out.Close()
			w = out
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := newReplayer(apiURL, rps, timeout, appLogger)
		stats, err := r.run(ctx, records, w)
		if err != nil {
			return err
		}

		summary := cmd.ErrOrStderr()
		printSuccess(summary, "Replayed %d pairs against %s", stats.sent, apiURL)
		printStatus(summary, "Similar", "%s", green(stats.similar))
		printStatus(summary, "Already stored", "%d", stats.existing)
		if stats.failed > 0 {
			printWarning(summary, "%d requests failed", stats.failed)
		}
		return nil
	},
}

type replayer struct {
	client  *http.Client
	url     string
	limiter *rate.Limiter
	logger  *zap.Logger
}

type replayStats struct {
	sent, similar, existing, failed int
}

func newReplayer(baseURL string, rps float64, timeout time.Duration, logger *zap.Logger) *replayer {
	return &replayer{
		client:  &http.Client{Timeout: timeout},
		url:     strings.TrimRight(baseURL, "/") + "/items/compare",
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

var replayHeader = []string{
	"line", "pair_id", "item_a", "item_b", "similarity_score",
	"are_similar", "are_equal", "strategy", "pair_exists", "existing_status", "error",
}

// run compares records in order and writes the report. Request failures are
// reported per row; only cancellation or a broken writer stops the run, and
// rows written before that are still flushed.
func (r *replayer) run(ctx context.Context, records []dataset.PairRecord, w io.Writer) (replayStats, error) {
	var stats replayStats
	out := csv.NewWriter(w)
	defer out.Flush()
	if err := out.Write(replayHeader); err != nil {
		return stats, err
	}

	for _, rec := range records {
		if err := r.limiter.Wait(ctx); err != nil {
			return stats, err
		}
		stats.sent++

		row := []string{
			strconv.Itoa(rec.Line), "",
			strconv.FormatInt(rec.ItemA.ItemID, 10), strconv.FormatInt(rec.ItemB.ItemID, 10),
			"", "", "", "", "", "", "",
		}
		res, err := r.compare(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.failed++
			r.logger.Warn("Compare request failed", zap.Int("line", rec.Line), zap.Error(err))
			row[10] = err.Error()
		} else {
			if res.AreSimilar {
				stats.similar++
			}
			if res.PairExists {
				stats.existing++
			}
			row[1] = res.PairID
			row[4] = strconv.FormatFloat(res.SimilarityScore, 'f', 4, 64)
			row[5] = strconv.FormatBool(res.AreSimilar)
			row[6] = strconv.FormatBool(res.AreEqual)
			row[7] = string(res.Strategy)
			row[8] = strconv.FormatBool(res.PairExists)
			row[9] = res.ExistingStatus
		}
		if err := out.Write(row); err != nil {
			return stats, err
		}
	}
	out.Flush()
	return stats, out.Error()
}

func (r *replayer) compare(ctx context.Context, rec dataset.PairRecord) (*dto.CompareResponse, error) {
	body, err := json.Marshal(dto.PairRequest{
		ItemA: &dto.ItemRequest{ItemID: &rec.ItemA.ItemID, Title: &rec.ItemA.Title},
		ItemB: &dto.ItemRequest{ItemID: &rec.ItemB.ItemID, Title: &rec.ItemB.Title},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}

	var out dto.CompareResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

func init() {
	replayCmd.Flags().String("csv", "", "Pair file with ITEM_A,TITLE_A,ITEM_B,TITLE_B columns")
	replayCmd.Flags().String("api-url", "", "Base URL of a running server")
	replayCmd.Flags().Float64("rps", 10, "Maximum requests per second")
	replayCmd.Flags().String("out", "", "Report file; defaults to stdout")
	replayCmd.Flags().Duration("timeout", 10*time.Second, "Per-request timeout")
	rootCmd.AddCommand(replayCmd)
}
