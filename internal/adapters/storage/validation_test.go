package storage

import "testing"

func TestParseObjectRef(t *testing.T) {
	ref, err := ParseObjectRef("s3://datasets/2024/skrytki.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Bucket != "datasets" || ref.Key != "2024/skrytki.csv" {
		t.Fatalf("unexpected ref %+v", ref)
	}
	if ref.String() != "s3://datasets/2024/skrytki.csv" {
		t.Fatalf("expected round trip, got %s", ref.String())
	}

	for _, bad := range []string{"/tmp/skrytki.csv", "s3://", "s3://datasets", "s3://datasets/", "s3:///key"} {
		if _, err := ParseObjectRef(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateContentType(t *testing.T) {
	if err := ValidateContentType("text/csv; charset=utf-8"); err != nil {
		t.Fatalf("expected csv to be accepted, got %v", err)
	}
	if err := ValidateContentType("image/png"); err == nil {
		t.Fatal("expected image to be rejected")
	}
}
