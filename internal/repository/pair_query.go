package repository

import (
	"embed"
	"errors"
	"time"

	"item-pairs/internal/models"

	"github.com/Masterminds/squirrel"
)

var (
	ErrPairNotFound = errors.New("item pair not found")
	// ErrPairConflict means a conditional write lost a race: the pair was
	// created, changed or promoted since it was read.
	ErrPairConflict = errors.New("item pair changed concurrently")
)

const pairsTable = "item_pairs"

//go:embed schema/*.sql
var schemaFS embed.FS

var pairColumns = []string{
	"pair_id", "item_a_id", "item_a_title", "item_b_id", "item_b_title",
	"similarity_score", "are_equal", "are_similar", "status", "source",
	"created_at", "updated_at", "version",
}

// dialect holds what differs between the SQL backends: placeholder style and
// how timestamps are bound.
type dialect struct {
	placeholder squirrel.PlaceholderFormat
	timeArg     func(time.Time) any
}

var postgresDialect = dialect{
	placeholder: squirrel.Dollar,
	timeArg:     func(t time.Time) any { return t.UTC() },
}

var sqliteDialect = dialect{
	placeholder: squirrel.Question,
	timeArg:     func(t time.Time) any { return formatTime(t) },
}

func (d dialect) insertPair(p *models.ItemPair) squirrel.InsertBuilder {
	return squirrel.Insert(pairsTable).
		Columns(pairColumns...).
		Values(p.PairID, p.ItemAID, p.ItemATitle, p.ItemBID, p.ItemBTitle,
			p.SimilarityScore, p.AreEqual, p.AreSimilar, string(p.Status), p.Source,
			d.timeArg(p.CreatedAt), d.timeArg(p.UpdatedAt), p.Version).
		Suffix("ON CONFLICT (pair_id) DO NOTHING").
		PlaceholderFormat(d.placeholder)
}

// updatePair rewrites a negative record only if it still carries
// expectedVersion. created_at is never touched.
func (d dialect) updatePair(p *models.ItemPair, expectedVersion int64) squirrel.UpdateBuilder {
	return squirrel.Update(pairsTable).
		Set("item_a_id", p.ItemAID).
		Set("item_a_title", p.ItemATitle).
		Set("item_b_id", p.ItemBID).
		Set("item_b_title", p.ItemBTitle).
		Set("similarity_score", p.SimilarityScore).
		Set("are_equal", p.AreEqual).
		Set("are_similar", p.AreSimilar).
		Set("status", string(p.Status)).
		Set("source", p.Source).
		Set("updated_at", d.timeArg(p.UpdatedAt)).
		Set("version", p.Version).
		Where(squirrel.Eq{
			"pair_id": p.PairID,
			"version": expectedVersion,
			"status":  string(models.PairStatusNegative),
		}).
		PlaceholderFormat(d.placeholder)
}

func (d dialect) selectPairs() squirrel.SelectBuilder {
	return squirrel.Select(pairColumns...).
		From(pairsTable).
		PlaceholderFormat(d.placeholder)
}

func (d dialect) getPair(pairID string) squirrel.SelectBuilder {
	return d.selectPairs().Where(squirrel.Eq{"pair_id": pairID})
}

func (d dialect) listPairs(limit, offset int) squirrel.SelectBuilder {
	q := d.selectPairs().OrderBy("created_at DESC", "pair_id")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}

func (d dialect) countPairs() squirrel.SelectBuilder {
	return squirrel.Select("COUNT(*)").From(pairsTable).PlaceholderFormat(d.placeholder)
}

func (d dialect) deletePair(pairID string) squirrel.DeleteBuilder {
	return squirrel.Delete(pairsTable).
		Where(squirrel.Eq{"pair_id": pairID}).
		PlaceholderFormat(d.placeholder)
}

// sqliteTimeLayout is fixed width so stored timestamps sort as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
