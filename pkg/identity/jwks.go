// Package identity integrates with the hosted identity provider: it verifies
// provider-issued RS256 tokens against the published JWKS, verifies signed
// webhooks, and pushes role metadata through the provider's admin API.
package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNotConfigured = errors.New("identity provider is not configured")

// Claims are read from provider-issued session tokens.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Metadata struct {
		Role string `json:"role"`
	} `json:"public_metadata"`
	jwt.RegisteredClaims
}

// UserRole returns the role claim, falling back to public metadata.
func (c *Claims) UserRole() string {
	if c.Role != "" {
		return c.Role
	}
	return c.Metadata.Role
}

// VerifierConfig configures a JWKS verifier.
type VerifierConfig struct {
	JWKSURL  string
	Issuer   string
	Audience string
}

// Verifier validates RS256 tokens with keys from a JWKS endpoint. Keys are
// fetched on first use and refreshed in the background until Close.
type Verifier struct {
	cfg VerifierConfig

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jwks keyfunc.Keyfunc
}

// NewVerifier returns nil when no JWKS URL is configured.
func NewVerifier(cfg VerifierConfig) *Verifier {
	if cfg.JWKSURL == "" {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Verifier{cfg: cfg, ctx: ctx, cancel: cancel}
}

// Close stops the background key refresh.
func (v *Verifier) Close() {
	if v != nil {
		v.cancel()
	}
}

// Verify parses and validates a provider token.
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	if v == nil {
		return nil, ErrNotConfigured
	}
	jwks, err := v.keySet()
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"}), jwt.WithExpirationRequired()}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, jwks.KeyfuncCtx(ctx), opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// keySet loads the JWKS once. A failed load is retried on the next call so a
// provider outage at startup does not disable provider logins for good.
func (v *Verifier) keySet() (keyfunc.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		return v.jwks, nil
	}
	jwks, err := keyfunc.NewDefaultCtx(v.ctx, []string{v.cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}
	v.jwks = jwks
	return jwks, nil
}
