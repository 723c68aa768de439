package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	// Headers must survive a rejected admin request as well.
	h := SecurityHeaders(BasicAuth("admin", "admin123")(okHandler()))

	for _, path := range []string{"/admin"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if w.Header().Get("X-Frame-Options") != "DENY" {
			t.Fatalf("missing X-Frame-Options on %s", path)
		}
		if w.Header().Get("Strict-Transport-Security") != "max-age=63072000; includeSubDomains; preload" {
			t.Fatalf("missing HSTS on %s", path)
		}
	}

	plain := SecurityHeaders(okHandler())
	w := httptest.NewRecorder()
	plain.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	for k, v := range securityHeaders {
		if w.Header().Get(k) != v {
			t.Fatalf("header %s = %q, want %q", k, w.Header().Get(k), v)
		}
	}
}
