// Package dataset parses and cleans the registry CSV export.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"skrytki/platform/sanitize"
)

// Column names of the registry export.
const (
	ColNazwa       = "NAZWA"
	ColRegon       = "REGON"
	ColAdres       = "ADRES"
	ColKodPocztowy = "KOD_POCZTOWY"
	ColMiejscowosc = "MIEJSCOWOSC"
	ColURI         = "URI"
)

var requiredColumns = []string{ColNazwa, ColRegon, ColAdres, ColKodPocztowy, ColMiejscowosc, ColURI}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Row is one cleaned record ready to be loaded.
type Row struct {
	Nazwa    *string
	Regon    *string
	Adres    string
	Skrytka  string
	CzyUrzad bool
}

// ParseResult holds the cleaned rows and the number of input records that
// were dropped.
type ParseResult struct {
	Rows    []Row
	Skipped int
}

// Parse reads a comma separated registry export with a header row and cleans
// every record. Records without a URI cannot be addressed and are skipped.
func Parse(r io.Reader, cls *Classifier) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return ParseResult{}, fmt.Errorf("read header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return ParseResult{}, err
	}

	result := ParseResult{Rows: make([]Row, 0)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("read record: %w", err)
		}

		row, ok := cleanRecord(record, index, cls)
		if !ok {
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[strings.ToUpper(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func cleanRecord(record []string, index map[string]int, cls *Classifier) (Row, bool) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		v := record[i]
		if v == "nan" {
			return ""
		}
		return v
	}

	skrytka := sanitize.CleanGently(field(ColURI))
	if skrytka == "" {
		return Row{}, false
	}

	nazwa := sanitize.CleanText(field(ColNazwa))
	adres := sanitize.CollapseSpaces(strings.Join([]string{
		sanitize.CleanGently(field(ColKodPocztowy)),
		sanitize.CleanGently(field(ColMiejscowosc)),
		sanitize.CleanGently(field(ColAdres)),
	}, " "))

	return Row{
		Nazwa:    nullable(nazwa),
		Regon:    nullable(sanitize.CleanGently(field(ColRegon))),
		Adres:    adres,
		Skrytka:  skrytka,
		CzyUrzad: cls.IsOffice(nazwa),
	}, true
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
