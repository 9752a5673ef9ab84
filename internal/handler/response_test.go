package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/service"
)

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: plate is required", domain.ErrValidation), http.StatusBadRequest},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"insufficient credit", domain.ErrInsufficientCredit, http.StatusConflict},
		{"conflict", fmt.Errorf("%w: plate already active", domain.ErrConflict), http.StatusConflict},
		{"out of stock", domain.ErrOutOfStock, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}

			var body apiResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != "error" {
				t.Fatalf("status field = %q, want error", body.Status)
			}
			if body.Error == nil || body.Error.Code != tt.want {
				t.Fatalf("error block = %+v, want code %d", body.Error, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]any{"plate": "ABC123"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" || body.Error != nil {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestParseDateQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/sales?from=2026-08-01", nil)

	from, err := parseDateQuery(r, "from")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if from == nil || from.Format(dateLayout) != "2026-08-01" {
		t.Fatalf("from = %v, want 2026-08-01", from)
	}

	to, err := parseDateQuery(r, "to")
	if err != nil {
		t.Fatalf("missing key: %v", err)
	}
	if to != nil {
		t.Fatalf("missing key should yield nil, got %v", to)
	}

	r = httptest.NewRequest(http.MethodGet, "/sales?from=01-08-2026", nil)
	if _, err := parseDateQuery(r, "from"); err == nil {
		t.Fatalf("malformed date should error")
	}
}
