package repository

import (
	"context"
	"fmt"

	"skrytki/internal/ingest/dataset"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is the subset of pgxpool.Pool the repository uses.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db TxBeginner
}

func New(db TxBeginner) *Repository {
	return &Repository{db: db}
}

var copyColumns = []string{"nazwa", "regon", "adres", "skrytka", "czy_urzad"}

// Replace swaps the whole table contents for rows in one transaction and
// returns the number of rows copied. Readers see either the old or the new
// dataset, never a mix.
func (r *Repository) Replace(ctx context.Context, rows []dataset.Row) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE skrytki RESTART IDENTITY`); err != nil {
		return 0, fmt.Errorf("truncate skrytki: %w", err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"skrytki"}, copyColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			return []any{row.Nazwa, row.Regon, row.Adres, row.Skrytka, row.CzyUrzad}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy skrytki: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	return n, nil
}
