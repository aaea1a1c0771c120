package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/premiereye/salesops/pkg/domain"
	"github.com/premiereye/salesops/pkg/logger"
)

// TokenProvider supplies the bearer token attached to upstream requests.
// The credential is opaque to this service; validation happens upstream.
type TokenProvider func(ctx context.Context) (string, error)

// StaticProvider returns a provider that always yields the given token
func StaticProvider(token string) TokenProvider {
	return func(ctx context.Context) (string, error) {
		if token == "" {
			return "", domain.NewUnauthorizedError()
		}
		return token, nil
	}
}

// NewProvider wraps StaticProvider with a startup expiry check: when the
// credential happens to be a JWT with an exp claim already in the past,
// every feed would fail with 401, so warn once up front.
func NewProvider(token string, log logger.Logger) TokenProvider {
	if token != "" && log != nil {
		if exp, err := Expiry(token); err == nil && !exp.IsZero() && exp.Before(time.Now()) {
			log.Warn("upstream token is expired", "expired_at", exp)
		}
	}
	return StaticProvider(token)
}

// Expiry extracts the exp claim of a JWT without verifying the signature.
// The zero time means the token carries no expiry.
func Expiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, err
	}
	return exp.Time, nil
}
