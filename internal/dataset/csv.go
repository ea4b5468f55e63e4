// Package dataset loads labeled and unlabeled title pairs from CSV and
// provides the built-in synthetic training set.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"item-pairs/internal/models"
	"item-pairs/internal/similarity"
)

var ErrMissingColumn = errors.New("missing csv column")

// PairRecord is one unlabeled row of a pairs file.
type PairRecord struct {
	Line  int
	ItemA models.Item
	ItemB models.Item
}

// LoadLabeledCSV reads item_a_title,item_b_title,is_similar rows.
func LoadLabeledCSV(r io.Reader) ([]similarity.TrainingSample, error) {
	rows, cols, err := readTable(r, "item_a_title", "item_b_title", "is_similar")
	if err != nil {
		return nil, err
	}
	samples := make([]similarity.TrainingSample, 0, len(rows))
	for i, row := range rows {
		label, err := strconv.Atoi(strings.TrimSpace(row[cols["is_similar"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: is_similar: %w", i+2, err)
		}
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("line %d: %w", i+2, similarity.ErrInvalidLabel)
		}
		samples = append(samples, similarity.TrainingSample{
			ItemATitle: row[cols["item_a_title"]],
			ItemBTitle: row[cols["item_b_title"]],
			IsSimilar:  label,
		})
	}
	return samples, nil
}

// LoadPairsCSV reads ITEM_A,TITLE_A,ITEM_B,TITLE_B rows. Titles are trimmed.
func LoadPairsCSV(r io.Reader) ([]PairRecord, error) {
	rows, cols, err := readTable(r, "item_a", "title_a", "item_b", "title_b")
	if err != nil {
		return nil, err
	}
	records := make([]PairRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		idA, err := strconv.ParseInt(strings.TrimSpace(row[cols["item_a"]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: ITEM_A: %w", line, err)
		}
		idB, err := strconv.ParseInt(strings.TrimSpace(row[cols["item_b"]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: ITEM_B: %w", line, err)
		}
		records = append(records, PairRecord{
			Line:  line,
			ItemA: models.Item{ItemID: idA, Title: strings.TrimSpace(row[cols["title_a"]])},
			ItemB: models.Item{ItemID: idB, Title: strings.TrimSpace(row[cols["title_b"]])},
		})
	}
	return records, nil
}

// LabelByExactMatch labels a pair similar only when its titles normalise to
// the same string. It is a crude heuristic for unlabeled pair files and
// produces no positive examples of near-duplicates.
func LabelByExactMatch(records []PairRecord) []similarity.TrainingSample {
	samples := make([]similarity.TrainingSample, len(records))
	for i, rec := range records {
		label := 0
		if similarity.Normalize(rec.ItemA.Title) == similarity.Normalize(rec.ItemB.Title) {
			label = 1
		}
		samples[i] = similarity.TrainingSample{
			ItemATitle: rec.ItemA.Title,
			ItemBTitle: rec.ItemB.Title,
			IsSimilar:  label,
		}
	}
	return samples
}

// Split shuffles a copy of samples with seed and cuts it so that trainFrac
// of them land in train. Both halves are non-empty whenever len(samples) >= 2
// and 0 < trainFrac < 1.
func Split(samples []similarity.TrainingSample, trainFrac float64, seed int64) (train, validation []similarity.TrainingSample) {
	shuffled := append([]similarity.TrainingSample(nil), samples...)
	if trainFrac >= 1 || len(shuffled) < 2 {
		return shuffled, nil
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	cut := int(float64(len(shuffled)) * trainFrac)
	if cut < 1 {
		cut = 1
	}
	if cut > len(shuffled)-1 {
		cut = len(shuffled) - 1
	}
	return shuffled[:cut], shuffled[cut:]
}

// readTable reads a headered CSV and maps the wanted column names
// (case-insensitive) to their positions.
func readTable(r io.Reader, wanted ...string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty csv: %w", ErrMissingColumn)
		}
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make(map[string]int, len(wanted))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, w := range wanted {
		if _, ok := cols[w]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, w)
		}
	}

	var rows [][]string
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv: %w", err)
		}
		for _, w := range wanted {
			if cols[w] >= len(row) {
				return nil, nil, fmt.Errorf("line %d: %w: %s", line, ErrMissingColumn, w)
			}
		}
		rows = append(rows, row)
	}
	return rows, cols, nil
}
