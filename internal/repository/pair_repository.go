package repository

import (
	"context"
	"errors"
	"fmt"

	"item-pairs/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PairRepository stores item pairs in PostgreSQL.
type PairRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
	sql    dialect
}

func NewPairRepository(db *pgxpool.Pool, logger *zap.Logger) *PairRepository {
	return &PairRepository{
		db:     db,
		logger: logger,
		sql:    postgresDialect,
	}
}

// EnsureSchema creates the item_pairs table and its indexes if missing.
func (r *PairRepository) EnsureSchema(ctx context.Context) error {
	ddl, err := schemaFS.ReadFile("schema/postgres.sql")
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	r.logger.Info("Item pair schema ready", zap.String("backend", "postgres"))
	return nil
}

// Create inserts p unless a record with the same pair id exists, in which
// case it returns ErrPairConflict.
func (r *PairRepository) Create(ctx context.Context, p *models.ItemPair) error {
	sql, args, err := r.sql.insertPair(p).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPairConflict
	}
	return nil
}

// Update overwrites a negative record still at expectedVersion.
func (r *PairRepository) Update(ctx context.Context, p *models.ItemPair, expectedVersion int64) error {
	sql, args, err := r.sql.updatePair(p, expectedVersion).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPairConflict
	}
	return nil
}

func (r *PairRepository) GetByID(ctx context.Context, pairID string) (*models.ItemPair, error) {
	sql, args, err := r.sql.getPair(pairID).ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPgPair(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPairNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PairRepository) List(ctx context.Context, limit, offset int) ([]*models.ItemPair, error) {
	sql, args, err := r.sql.listPairs(limit, offset).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []*models.ItemPair
	for rows.Next() {
		p, err := scanPgPair(rows)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func (r *PairRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.sql.countPairs().ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PairRepository) Delete(ctx context.Context, pairID string) error {
	sql, args, err := r.sql.deletePair(pairID).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPairNotFound
	}
	return nil
}

func scanPgPair(row pgx.Row) (*models.ItemPair, error) {
	var p models.ItemPair
	var status string
	if err := row.Scan(
		&p.PairID, &p.ItemAID, &p.ItemATitle, &p.ItemBID, &p.ItemBTitle,
		&p.SimilarityScore, &p.AreEqual, &p.AreSimilar, &status, &p.Source,
		&p.CreatedAt, &p.UpdatedAt, &p.Version,
	); err != nil {
		return nil, err
	}
	p.Status = models.PairStatus(status)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
