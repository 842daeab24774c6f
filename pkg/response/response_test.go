package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnvelopes(t *testing.T) {
	cases := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		want   map[string]any
	}{
		{
			name:   "success",
			write:  func(w http.ResponseWriter) { Success(w, map[string]any{"screen": "auth"}) },
			status: http.StatusOK,
			want:   map[string]any{"success": true},
		},
		{
			name:   "error",
			write:  func(w http.ResponseWriter) { Error(w, http.StatusNotFound, "NOT_FOUND", "Receipt archive is not configured") },
			status: http.StatusNotFound,
			want:   map[string]any{"success": false, "error": "NOT_FOUND", "message": "Receipt archive is not configured"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if got := rec.Header().Get("Cache-Control"); got != "no-store" {
				t.Fatalf("expected no-store, got %q", got)
			}
			if got := rec.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
				t.Fatalf("unexpected content type %q", got)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for key, want := range tc.want {
				if body[key] != want {
					t.Fatalf("%s: expected %v, got %v", key, want, body[key])
				}
			}
		})
	}
}

func TestSuccessCarriesData(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]any{"screen": "order-options"})

	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["screen"] != "order-options" {
		t.Fatalf("expected data.screen, got %+v", body.Data)
	}
}
