package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:    http.StatusNotFound,
		KindValidation:  http.StatusBadRequest,
		KindBadRequest:  http.StatusBadRequest,
		KindInternal:    http.StatusInternalServerError,
		KindUnavailable: http.StatusServiceUnavailable,
		KindUnknown:     http.StatusBadRequest,
	}

	for kind, want := range cases {
		if got := New(kind, "x").HTTPStatus(); got != want {
			t.Fatalf("kind %d: expected status %d, got %d", kind, want, got)
		}
	}
}

func TestGetKindFollowsWrappedErrors(t *testing.T) {
	root := errors.New("connection refused")
	err := fmt.Errorf("search: %w", Wrap(KindUnavailable, "database unavailable", root).WithOp("search.Search"))

	if !Is(err, KindUnavailable) {
		t.Fatalf("expected wrapped error to be KindUnavailable, got %d", GetKind(err))
	}
	if !errors.Is(err, root) {
		t.Fatal("expected the root cause to stay reachable through Unwrap")
	}
	if GetKind(root) != KindUnknown {
		t.Fatal("expected plain errors to report KindUnknown")
	}
}

func TestErrorMessageIncludesOp(t *testing.T) {
	err := NotFound("address not found").WithOp("search.URIs")
	if err.Error() != "search.URIs: address not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
