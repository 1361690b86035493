package searchui

import (
	"strconv"
	"strings"

	"skrytki/internal/search/transport"
)

// Pr renders an optional field: nil and empty both become "".
func Pr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Renderer turns fetched items into the lines of an output surface.
type Renderer[T any] interface {
	Render(items []T) []string
}

// TableRenderer renders one tab separated row per address record.
type TableRenderer struct{}

// RowCells are the table cells of r: nazwa, regon, adres, skrytka, id.
func RowCells(r transport.AddressRecord) []string {
	return []string{Pr(r.Nazwa), Pr(r.Regon), r.Adres, r.Skrytka, strconv.FormatInt(r.ID, 10)}
}

func (TableRenderer) Render(records []transport.AddressRecord) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = strings.Join(RowCells(r), "\t")
	}
	return lines
}

// ListRenderer renders one line per string.
type ListRenderer struct{}

func (ListRenderer) Render(items []string) []string {
	return append([]string{}, items...)
}

var (
	_ Renderer[transport.AddressRecord] = TableRenderer{}
	_ Renderer[string]                  = ListRenderer{}
)
