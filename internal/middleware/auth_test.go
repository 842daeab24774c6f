package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"group-order-client/internal/backend"
	"group-order-client/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(func() (session.API, error) {
		return backend.New(backend.Options{BaseURL: "http://backend.invalid"})
	}, time.Hour, nil)
}

func serveWithViewSession(store *session.Store, secret string, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	var seen string
	handler := ViewSessionAuth(ViewSessionOptions{Store: store, Secret: secret, TTL: time.Hour})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if vs, ok := GetViewSession(r.Context()); ok {
				seen = vs.ID
			}
		}),
	)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func viewCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == ViewSessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", ViewSessionCookie)
	return nil
}

func TestViewSessionIsCreatedAndReused(t *testing.T) {
	store := newTestStore(t)

	rec, first := serveWithViewSession(store, "secret", nil)
	if first == "" {
		t.Fatalf("expected a view session")
	}
	cookie := viewCookie(t, rec)
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes %+v", cookie)
	}

	_, second := serveWithViewSession(store, "secret", cookie)
	if second != first {
		t.Fatalf("expected session %s reused, got %s", first, second)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored session, got %d", store.Len())
	}
}

func TestViewSessionInvalidCookieStartsFresh(t *testing.T) {
	store := newTestStore(t)
	rec, first := serveWithViewSession(store, "secret", nil)
	cookie := viewCookie(t, rec)

	cases := []struct {
		name   string
		cookie *http.Cookie
		secret string
	}{
		{name: "garbage token", cookie: &http.Cookie{Name: ViewSessionCookie, Value: "garbage"}, secret: "secret"},
		{name: "signed with another secret", cookie: cookie, secret: "rotated"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, got := serveWithViewSession(store, tc.secret, tc.cookie)
			if got == "" || got == first {
				t.Fatalf("expected a new session, got %q", got)
			}
		})
	}
}

func TestRequestIDIsKeptOrGenerated(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-Id", "corr-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "corr-1" || rec.Header().Get("X-Request-Id") != "corr-1" {
		t.Fatalf("expected correlation id reused, got %q", seen)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "corr-1" {
		t.Fatalf("expected generated request id, got %q", seen)
	}
}
