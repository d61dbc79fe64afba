package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	t.Parallel()

	h := Chain(okHandler(), RateLimitByIP(RateLimitConfig{
		RequestsPerWindow: 3,
		Window:            time.Minute,
		Burst:             3,
	}))

	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestRateLimitBlocksOverBurst(t *testing.T) {
	t.Parallel()

	h := Chain(okHandler(), RateLimitByIP(RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		Burst:             2,
	}))

	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		h.ServeHTTP(last, req)
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestRateLimitSeparatesKeys(t *testing.T) {
	t.Parallel()

	h := Chain(okHandler(), RateLimitByIP(RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		Burst:             1,
	}))

	for _, addr := range []string{"10.1.0.1:1", "10.1.0.2:1", "10.1.0.3:1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaults := RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Run("unset keeps defaults", func(t *testing.T) {
		require.Equal(t, defaults, ParseRateLimitFromEnv("TESTUNSET", defaults))
	})

	t.Run("overrides apply", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTSET_REQUESTS", "50")
		t.Setenv("RATELIMIT_TESTSET_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TESTSET_BURST", "60")

		got := ParseRateLimitFromEnv("TESTSET", defaults)
		require.Equal(t, 50, got.RequestsPerWindow)
		require.Equal(t, 30*time.Second, got.Window)
		require.Equal(t, 60, got.Burst)
	})

	t.Run("malformed values are ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTBAD_REQUESTS", "lots")
		t.Setenv("RATELIMIT_TESTBAD_BURST", "-1")

		require.Equal(t, defaults, ParseRateLimitFromEnv("TESTBAD", defaults))
	})
}

func TestIPKeyExtractorHonoursForwardedFor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	require.Equal(t, "203.0.113.7", IPKeyExtractor(req))
}
