package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestHTTPStatusPerKind(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Conflict("duplicate"), http.StatusConflict},
		{NotFound("missing"), http.StatusNotFound},
		{Storage(errors.New("boom")), http.StatusInternalServerError},
		{Internal("invariant violated"), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestFromStorageMapping(t *testing.T) {
	if got := FromStorage(gorm.ErrDuplicatedKey).Kind; got != KindConflict {
		t.Errorf("duplicated key mapped to %v, want Conflict", got)
	}
	if got := FromStorage(gorm.ErrRecordNotFound).Kind; got != KindNotFound {
		t.Errorf("record not found mapped to %v, want NotFound", got)
	}
	if got := FromStorage(errors.New("dial tcp: refused")).Kind; got != KindStorage {
		t.Errorf("generic error mapped to %v, want Storage", got)
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("adding item: %w", Conflict("duplicate"))
	if KindOf(err) != KindConflict {
		t.Errorf("KindOf(wrapped) = %v, want Conflict", KindOf(err))
	}
}

func TestStorageUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	if !errors.Is(Storage(cause), cause) {
		t.Error("Storage error does not unwrap to its cause")
	}
}
