package errorhandler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/logger"
)

func TestHandleErrorLogsCauseButHidesIt(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(), zerolog.New(&buf))
	rr := httptest.NewRecorder()

	HandleError(ctx, rr, http.StatusBadGateway, "UPSTREAM_ERROR", "payment provider unavailable", errors.New("dial tcp: refused"))

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "refused") {
		t.Fatalf("internal error leaked to client: %s", rr.Body.String())
	}
	if !strings.Contains(buf.String(), "dial tcp: refused") {
		t.Fatalf("expected cause in log, got %s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc...<truncated>" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("abc", 3); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
}
