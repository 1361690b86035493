package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// Querier is the subset of pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository struct {
	db Querier
}

func New(db Querier) *Repository {
	return &Repository{db: db}
}

// Record is one row of the skrytki table.
type Record struct {
	ID      int64
	Nazwa   *string
	Regon   *string
	Adres   string
	Skrytka string
}

// Filter describes one search. Pattern is an ILIKE pattern (already escaped,
// with surrounding wildcards), Regon the exact text compared to the REGON
// column.
type Filter struct {
	Pattern  string
	Regon    string
	CzyUrzad bool
	Limit    int
}

const (
	byRegonSQL = `
		SELECT id, nazwa, regon, adres, skrytka
		FROM skrytki
		WHERE regon = $1 AND (NOT $2::boolean OR czy_urzad)
		LIMIT $3`

	byNazwaSQL = `
		SELECT id, nazwa, regon, adres, skrytka
		FROM skrytki
		WHERE nazwa ILIKE $1 AND (NOT $2::boolean OR czy_urzad)
		LIMIT $3`

	byAdresSQL = `
		SELECT id, nazwa, regon, adres, skrytka
		FROM skrytki
		WHERE adres ILIKE $1 AND (NOT $2::boolean OR czy_urzad)
		LIMIT $3`

	entityURIsSQL = `
		WITH target AS (
			SELECT nazwa, regon, adres FROM skrytki WHERE id = $1
		)
		SELECT DISTINCT s.skrytka
		FROM skrytki s, target t
		WHERE (COALESCE(t.regon, '') <> '' AND s.regon = t.regon)
			OR (COALESCE(t.regon, '') = '' AND s.nazwa IS NOT DISTINCT FROM t.nazwa AND s.adres = t.adres)
		ORDER BY s.skrytka`
)

// Search runs the REGON, name and address branches concurrently and returns
// their concatenation in that order, truncated to f.Limit.
func (r *Repository) Search(ctx context.Context, f Filter) ([]Record, error) {
	var branches [3][]Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		branches[0], err = r.query(gctx, "regon", byRegonSQL, f.Regon, f.CzyUrzad, f.Limit)
		return err
	})
	g.Go(func() (err error) {
		branches[1], err = r.query(gctx, "nazwa", byNazwaSQL, f.Pattern, f.CzyUrzad, f.Limit)
		return err
	})
	g.Go(func() (err error) {
		branches[2], err = r.query(gctx, "adres", byAdresSQL, f.Pattern, f.CzyUrzad, f.Limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Record, 0, len(branches[0])+len(branches[1])+len(branches[2]))
	for _, b := range branches {
		items = append(items, b...)
	}
	if len(items) > f.Limit {
		items = items[:f.Limit]
	}

	return items, nil
}

func (r *Repository) query(ctx context.Context, branch, sql string, args ...any) ([]Record, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search by %s failed: %w", branch, err)
	}
	defer rows.Close()

	items := make([]Record, 0)
	for rows.Next() {
		var item Record
		if err := rows.Scan(&item.ID, &item.Nazwa, &item.Regon, &item.Adres, &item.Skrytka); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", branch, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search by %s failed: %w", branch, err)
	}

	return items, nil
}

// EntityURIs returns every distinct skrytka of the entity record id belongs
// to. An entity is identified by its REGON, or by name and address when the
// REGON is empty. An empty result means the record does not exist.
func (r *Repository) EntityURIs(ctx context.Context, id int64) ([]string, error) {
	rows, err := r.db.Query(ctx, entityURIsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("entity uris query failed: %w", err)
	}
	defer rows.Close()

	uris := make([]string, 0)
	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return nil, err
		}
		uris = append(uris, uri)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return uris, nil
}
