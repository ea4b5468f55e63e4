package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"item-pairs/internal/models"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLitePairRepository stores item pairs in a single SQLite file.
type SQLitePairRepository struct {
	db     *sql.DB
	logger *zap.Logger
	sql    dialect
}

// OpenSQLitePairRepository opens (or creates) the database at path. Pass
// ":memory:" for a private in-memory database.
func OpenSQLitePairRepository(path string, logger *zap.Logger) (*SQLitePairRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	// A single connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode = WAL"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	logger.Info("SQLite store opened", zap.String("path", path))
	return &SQLitePairRepository{db: db, logger: logger, sql: sqliteDialect}, nil
}

func (r *SQLitePairRepository) Close() error {
	return r.db.Close()
}

func (r *SQLitePairRepository) EnsureSchema(ctx context.Context) error {
	ddl, err := schemaFS.ReadFile("schema/sqlite.sql")
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	r.logger.Info("Item pair schema ready", zap.String("backend", "sqlite"))
	return nil
}

func (r *SQLitePairRepository) Create(ctx context.Context, p *models.ItemPair) error {
	query, args, err := r.sql.insertPair(p).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return affectedOr(res, ErrPairConflict)
}

func (r *SQLitePairRepository) Update(ctx context.Context, p *models.ItemPair, expectedVersion int64) error {
	query, args, err := r.sql.updatePair(p, expectedVersion).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return affectedOr(res, ErrPairConflict)
}

func (r *SQLitePairRepository) GetByID(ctx context.Context, pairID string) (*models.ItemPair, error) {
	query, args, err := r.sql.getPair(pairID).ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanSQLitePair(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPairNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLitePairRepository) List(ctx context.Context, limit, offset int) ([]*models.ItemPair, error) {
	query, args, err := r.sql.listPairs(limit, offset).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []*models.ItemPair
	for rows.Next() {
		p, err := scanSQLitePair(rows)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func (r *SQLitePairRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.sql.countPairs().ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLitePairRepository) Delete(ctx context.Context, pairID string) error {
	query, args, err := r.sql.deletePair(pairID).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return affectedOr(res, ErrPairNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePair(row rowScanner) (*models.ItemPair, error) {
	var p models.ItemPair
	var status, createdAt, updatedAt string
	if err := row.Scan(
		&p.PairID, &p.ItemAID, &p.ItemATitle, &p.ItemBID, &p.ItemBTitle,
		&p.SimilarityScore, &p.AreEqual, &p.AreSimilar, &status, &p.Source,
		&createdAt, &updatedAt, &p.Version,
	); err != nil {
		return nil, err
	}
	p.Status = models.PairStatus(status)

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at for %s: %w", p.PairID, err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("bad updated_at for %s: %w", p.PairID, err)
	}
	return &p, nil
}

func affectedOr(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return none
	}
	return nil
}
