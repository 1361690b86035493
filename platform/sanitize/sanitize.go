// Package sanitize provides the text cleaning rules applied to imported
// registry data and to user queries.
package sanitize

import (
	"regexp"
	"strings"
)

// ws matches Unicode whitespace, including the no-break space common in
// registry exports; `\s` alone is ASCII only.
const ws = `[\s\p{Z}]`

type rule struct {
	re   *regexp.Regexp
	repl string
}

// nameRules are applied in order by CleanText.
var nameRules = []rule{
	{regexp.MustCompile(`\t`), " "},
	{regexp.MustCompile(`[,;_]`), " "},
	{regexp.MustCompile(`'`), ""},
	{regexp.MustCompile(`"{2,}`), `"`},
	{regexp.MustCompile(`\.`), ". "},
	{regexp.MustCompile(ws + `?-` + ws + `?`), " - "},
	// space before a quoted string glued to the previous word
	{regexp.MustCompile(`([^\s\p{Z}])(".+")`), "${1} ${2}"},
	// space after a quoted string glued to the next word
	{regexp.MustCompile(`(".+")([^\s\p{Z}])`), "${1} ${2}"},
	{regexp.MustCompile(ws + ws + `+`), " "},
	// a fully quoted value loses its quotes
	{regexp.MustCompile(`^(")(.+)("` + ws + `*)$`), "${2}"},
}

var (
	multiSpaceRegex = regexp.MustCompile(ws + ws + `+`)
	anySpaceRegex   = regexp.MustCompile(ws + `+`)
)

// CleanText normalizes an entity name: separators become spaces, stray
// apostrophes and doubled quotes are removed, dots and dashes get spacing,
// quoted fragments are separated from neighbouring words and whitespace is
// collapsed.
func CleanText(s string) string {
	for _, r := range nameRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return strings.TrimSpace(s)
}

// CleanGently only removes the "(miasto)" and "(wieś)" markers and redundant
// whitespace, leaving the rest of the value untouched.
func CleanGently(s string) string {
	s = strings.ReplaceAll(s, "(miasto)", "")
	s = strings.ReplaceAll(s, "(wieś)", "")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CollapseSpaces trims s and replaces every run of whitespace with a single
// space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(anySpaceRegex.ReplaceAllString(s, " "))
}
