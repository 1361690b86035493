package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywords []byte

type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// Classifier decides whether a cleaned name belongs to a public authority.
type Classifier struct {
	stems []string
}

// NewClassifier builds a classifier from the YAML keyword file at path, or
// from the built-in list when path is empty.
func NewClassifier(path string) (*Classifier, error) {
	data := defaultKeywords
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read keywords: %w", err)
		}
		data = raw
	}
	return parseClassifier(data)
}

func parseClassifier(data []byte) (*Classifier, error) {
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse keywords: %w", err)
	}

	fold := cases.Fold()
	c := &Classifier{}
	for _, kw := range kf.Keywords {
		kw = strings.Join(strings.Fields(fold.String(kw)), " ")
		if kw != "" {
			c.stems = append(c.stems, kw)
		}
	}
	if len(c.stems) == 0 {
		return nil, fmt.Errorf("parse keywords: list is empty")
	}
	return c, nil
}

// IsOffice reports whether some word of name starts with a keyword stem.
func (c *Classifier) IsOffice(name string) bool {
	if name == "" {
		return false
	}

	words := strings.FieldsFunc(cases.Fold().String(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	normalized := " " + strings.Join(words, " ")

	for _, stem := range c.stems {
		if strings.Contains(normalized, " "+stem) {
			return true
		}
	}
	return false
}
