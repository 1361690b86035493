package searchui

import (
	"strconv"
	"strings"
)

const (
	defaultLimit    = 100
	defaultCzyUrzad = false
)

// SearchOptions are the filters sent with every search.
type SearchOptions struct {
	CzyUrzad bool
	Limit    int
}

// DefaultOptions are used until the user picks something else.
func DefaultOptions() SearchOptions {
	return SearchOptions{CzyUrzad: defaultCzyUrzad, Limit: defaultLimit}
}

// OptionsFromRadio maps the values of the two option groups: options1 picks
// czy_urzad ("1" true, "0" false) and options2 the limit. Unset or
// unrecognized values keep the default.
func OptionsFromRadio(options1, options2 string) SearchOptions {
	opts := DefaultOptions()

	switch strings.TrimSpace(options1) {
	case "1":
		opts.CzyUrzad = true
	case "0":
		opts.CzyUrzad = false
	}

	if limit, err := strconv.Atoi(strings.TrimSpace(options2)); err == nil && limit > 0 {
		opts.Limit = limit
	}

	return opts
}
