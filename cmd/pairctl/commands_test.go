package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"item-pairs/internal/dataset"
	"item-pairs/internal/dto"
	"item-pairs/internal/models"
	"item-pairs/internal/repository"
	"item-pairs/internal/service"
	"item-pairs/internal/similarity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const pairsCSV = `ITEM_A,TITLE_A,ITEM_B,TITLE_B
2,Telefono movil,1,Telefono movil
3,Mouse Logitech,4,Teclado HP
1,Telefono movil,2,Telefono movil
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedFile(t *testing.T) {
	store := repository.NewMemoryPairRepository()
	pairs := service.NewPairService(store, similarity.NewDetector(zap.NewNop()), 3, zap.NewNop())
	path := writeFile(t, "pairs.csv", pairsCSV)

	stats, err := seedFile(context.Background(), pairs, path, 1, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.rows)
	assert.Equal(t, int64(2), stats.created.Load())
	assert.Equal(t, int64(1), stats.skipped.Load())
	assert.Zero(t, stats.failed.Load())

	p, err := store.GetByID(context.Background(), "1_2")
	require.NoError(t, err)
	assert.Equal(t, models.PairStatusPositive, p.Status)
	assert.Equal(t, "csv:pairs.csv", p.Source)

	p, err = store.GetByID(context.Background(), "3_4")
	require.NoError(t, err)
	assert.Equal(t, models.PairStatusNegative, p.Status)
}

func TestSeedFileRejectsBadInput(t *testing.T) {
	pairs := service.NewPairService(repository.NewMemoryPairRepository(), similarity.NewDetector(zap.NewNop()), 3, zap.NewNop())

	_, err := seedFile(context.Background(), pairs, writeFile(t, "bad.csv", "ITEM_A,TITLE_A\n1,x\n"), 2, zap.NewNop())
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	_, err = seedFile(context.Background(), pairs, filepath.Join(t.TempDir(), "missing.csv"), 2, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadSamples(t *testing.T) {
	samples, err := loadSamples("", false)
	require.NoError(t, err)
	assert.Equal(t, dataset.SyntheticSamples(), samples)

	samples, err = loadSamples(writeFile(t, "pairs.csv", pairsCSV), true)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, 1, samples[0].IsSimilar)
	assert.Equal(t, 0, samples[1].IsSimilar)

	labeled := "item_a_title,item_b_title,is_similar\nMouse Logitech,Mouse Logitech G,1\n"
	samples, err = loadSamples(writeFile(t, "labeled.csv", labeled), false)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestReplayWritesReport(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/items/compare", r.URL.Path)

		var req dto.PairRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if *req.ItemA.ItemID == 3 {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.CompareResponse{
			PairID:          models.PairID(*req.ItemA.ItemID, *req.ItemB.ItemID),
			SimilarityScore: 1,
			AreEqual:        true,
			AreSimilar:      true,
			Strategy:        similarity.StrategyFallback,
			PairExists:      true,
			ExistingStatus:  "positive",
		})
	}))
	defer srv.Close()

	records, err := dataset.LoadPairsCSV(strings.NewReader(pairsCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	r := newReplayer(srv.URL+"/", 1000, time.Second, zap.NewNop())
	stats, err := r.run(context.Background(), records, &buf)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, replayStats{sent: 3, similar: 2, existing: 2, failed: 1}, stats)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, replayHeader, rows[0])
	assert.Equal(t, []string{"2", "1_2", "2", "1", "1.0000", "true", "true", "fallback", "true", "positive", ""}, rows[1])
	assert.Equal(t, "server returned 500: boom", rows[2][10])
}

func TestReplayStopsOnCancel(t *testing.T) {
	records, err := dataset.LoadPairsCSV(strings.NewReader(pairsCSV))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newReplayer("http://127.0.0.1:0", 1, time.Second, zap.NewNop())
	_, err = r.run(ctx, records, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplayFlushesRowsBeforeCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The second request cancels the run mid-flight.
		if calls.Add(1) > 1 {
			cancel()
			return
		}
		_ = json.NewEncoder(w).Encode(dto.CompareResponse{PairID: "1_2", Strategy: similarity.StrategyFallback})
	}))
	defer srv.Close()

	records, err := dataset.LoadPairsCSV(strings.NewReader(pairsCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	r := newReplayer(srv.URL, 1000, time.Second, zap.NewNop())
	stats, err := r.run(ctx, records, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, stats.sent)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, replayHeader, rows[0])
	assert.Equal(t, "1_2", rows[1][1])
}
