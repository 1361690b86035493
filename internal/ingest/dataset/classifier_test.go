package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultClassifier(t *testing.T) {
	c, err := NewClassifier("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	offices := []string{
		"Urząd Gminy Zabierzów",
		"URZĄD SKARBOWY W BOCHNI",
		"Starostwo Powiatowe w Krakowie",
		"Sąd Rejonowy dla Krakowa - Śródmieścia",
		"Zakład Ubezpieczeń Społecznych Oddział w Chrzanowie",
		"Gminny Ośrodek Kultury",
	}
	for _, name := range offices {
		if !c.IsOffice(name) {
			t.Fatalf("expected %q to be classified as an office", name)
		}
	}

	others := []string{
		"",
		"Przedszkole \"Słoneczko\"",
		"ACME Sp. z o. o.",
		"Osąd Nieruchomości",
	}
	for _, name := range others {
		if c.IsOffice(name) {
			t.Fatalf("expected %q not to be classified as an office", name)
		}
	}
}

func TestClassifierFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte("keywords:\n  - Szkoła  Podstawowa\n"), 0o644); err != nil {
		t.Fatalf("write keywords: %v", err)
	}

	c, err := NewClassifier(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsOffice("SZKOŁA PODSTAWOWA NR 5") {
		t.Fatal("expected custom keyword to match")
	}
	if c.IsOffice("Urząd Gminy") {
		t.Fatal("expected custom list to replace the built-in one")
	}
}

func TestClassifierRejectsEmptyList(t *testing.T) {
	if _, err := parseClassifier([]byte("keywords: []\n")); err == nil {
		t.Fatal("expected error for empty keyword list")
	}
	if _, err := NewClassifier(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
