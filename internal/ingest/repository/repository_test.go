package repository

import (
	"context"
	"errors"
	"testing"

	"skrytki/internal/ingest/dataset"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
)

func strPtr(s string) *string { return &s }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestReplaceTruncatesAndCopies(t *testing.T) {
	mock := newMock(t)
	rows := []dataset.Row{
		{Nazwa: strPtr("Urząd Gminy Zabierzów"), Regon: strPtr("351555680"), Adres: "32-080 Zabierzów Rynek 1", Skrytka: "/UGZabierzow/SkrytkaESP", CzyUrzad: true},
		{Adres: "00-001 Warszawa", Skrytka: "/anon/skrytka"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE TABLE skrytki RESTART IDENTITY`).
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"skrytki"}, copyColumns).
		WillReturnResult(2)
	mock.ExpectCommit()

	n, err := New(mock).Replace(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows copied, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceRollsBackOnCopyFailure(t *testing.T) {
	mock := newMock(t)
	boom := errors.New("invalid byte sequence")

	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE TABLE skrytki`).
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"skrytki"}, copyColumns).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := New(mock).Replace(context.Background(), []dataset.Row{{Skrytka: "/x/skrytka"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected copy error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceBeginFailure(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	if _, err := New(mock).Replace(context.Background(), nil); err == nil {
		t.Fatal("expected begin error")
	}
}
