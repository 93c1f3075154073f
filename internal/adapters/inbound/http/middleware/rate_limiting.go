package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/architeacher/device-registry/internal/config"
	appLogger "github.com/architeacher/device-registry/pkg/logger"
	"github.com/throttled/throttled/v2"
)

const (
	RateLimitLimitHeader     = "RateLimit-Limit"
	RateLimitRemainingHeader = "RateLimit-Remaining"
	RateLimitResetHeader     = "RateLimit-Reset"
	RetryAfterHeader         = "Retry-After"
)

func RateLimiting(
	cfg config.RateLimit,
	store throttled.GCRAStoreCtx,
	logger appLogger.Logger,
) func(http.Handler) http.Handler {
	quota := throttled.RateQuota{
		MaxRate:  throttled.PerSec(int(cfg.RequestsPerSecond)),
		MaxBurst: int(cfg.BurstSize),
	}

	rateLimiter, err := throttled.NewGCRARateLimiterCtx(store, quota)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create rate limiter")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipRateLimit(r.URL.Path, cfg.SkipPaths) {
				next.ServeHTTP(w, r)

				return
			}

			limited, result, err := rateLimiter.RateLimitCtx(r.Context(), clientKey(r), 1)
			if err != nil {
				logger.Error().Err(err).Msg("rate limiter failure, allowing request")
				next.ServeHTTP(w, r)

				return
			}

			setRateLimitHeaders(w, result)

			if limited {
				writeRateLimitedResponse(w, result.RetryAfter)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func shouldSkipRateLimit(path string, skipPaths []string) bool {
	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}

	return false
}

// clientKey buckets requests by remote address. RealIP middleware runs
// first, so RemoteAddr already reflects X-Forwarded-For where trusted.
func clientKey(r *http.Request) string {
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}

	return host
}

func setRateLimitHeaders(w http.ResponseWriter, result throttled.RateLimitResult) {
	w.Header().Set(RateLimitLimitHeader, strconv.Itoa(result.Limit))
	w.Header().Set(RateLimitRemainingHeader, strconv.Itoa(result.Remaining))
	w.Header().Set(RateLimitResetHeader, strconv.Itoa(int(result.ResetAfter.Seconds())))
}

func writeRateLimitedResponse(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set(RetryAfterHeader, strconv.Itoa(int(retryAfter.Seconds())))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "RATE_LIMITED",
		"message": "too many requests",
	})
}
