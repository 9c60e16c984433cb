package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/lumierebeauty/lumiere-backend/api/responses"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

const maxRateLimitBodyBytes = 1 << 16

// RateLimitStore is the counter surface the throttle consumes. *redis.Client
// satisfies it; tests substitute an in-memory counter.
type RateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// RateLimitPolicy caps attempts per email and per client IP inside a window.
type RateLimitPolicy struct {
	Scope      string
	Window     time.Duration
	EmailLimit int
	IPLimit    int
}

// LoginRateLimitPolicy builds the login throttle from configuration.
func LoginRateLimitPolicy(cfg config.AuthRateLimitConfig) RateLimitPolicy {
	return RateLimitPolicy{
		Scope:      "login",
		Window:     cfg.LoginWindow,
		EmailLimit: cfg.LoginEmailLimit,
		IPLimit:    cfg.LoginIPLimit,
	}
}

// RegisterRateLimitPolicy builds the registration throttle from configuration.
func RegisterRateLimitPolicy(cfg config.AuthRateLimitConfig) RateLimitPolicy {
	return RateLimitPolicy{
		Scope:      "register",
		Window:     cfg.RegisterWindow,
		EmailLimit: cfg.RegisterEmailLimit,
		IPLimit:    cfg.RegisterIPLimit,
	}
}

// AuthRateLimit throttles credential endpoints. A nil store disables the
// middleware entirely so the API can run without redis.
func AuthRateLimit(store RateLimitStore, policy RateLimitPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := peekEmail(r)

			if email != "" && policy.EmailLimit > 0 {
				key := store.RateLimitKey(policy.Scope + ":email:" + email)
				if exceeded(r, store, key, policy.Window, policy.EmailLimit, logg) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
					return
				}
			}

			if ip := clientIP(r); ip != "" && policy.IPLimit > 0 {
				key := store.RateLimitKey(policy.Scope + ":ip:" + ip)
				if exceeded(r, store, key, policy.Window, policy.IPLimit, logg) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func exceeded(r *http.Request, store RateLimitStore, key string, window time.Duration, limit int, logg *logger.Logger) bool {
	count, err := store.IncrWithTTL(r.Context(), key, window)
	if err != nil {
		// Redis being down never blocks sign-in.
		if logg != nil {
			logg.Warn(logg.WithField(r.Context(), "rate_limit_key", key), "auth.rate_limit.unavailable")
		}
		return false
	}
	return count > int64(limit)
}

// peekEmail reads the email field without consuming the body for the handler.
// Bodies past the peek cap skip the email counter; the handler still receives
// every byte through the stitched reader.
func peekEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	original := r.Body
	peeked, err := io.ReadAll(io.LimitReader(original, maxRateLimitBodyBytes))
	r.Body = stitchedBody{
		Reader: io.MultiReader(bytes.NewReader(peeked), original),
		Closer: original,
	}
	if err != nil || len(peeked) == maxRateLimitBodyBytes {
		return ""
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(peeked, &payload); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(payload.Email))
}

// stitchedBody replays the peeked bytes ahead of the unread remainder.
type stitchedBody struct {
	io.Reader
	io.Closer
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
