package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of every issued token.
const TokenTTL = 24 * time.Hour

type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// Expired reports whether the token is past its expiry at now. Tokens
// without an exp claim are treated as expired.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Time)
}

// Stale reports whether the token expires within leeway of now, which is
// when a client should ask for a refreshed token.
func (c *Claims) Stale(now time.Time, leeway time.Duration) bool {
	return c.Expired(now.Add(leeway))
}

type Option func(*Codec)

func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

type Codec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

func NewCodec(secret string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	c := &Codec{
		secret: []byte(secret),
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) Encode(identity Identity) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and structure of token and returns its
// claims. Expiry is left to the caller; see Authenticate.
func (c *Codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.User.UUID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Probe decodes the payload without checking the signature. It exists for
// local staleness checks and must never be used to authenticate a caller.
func (c *Codec) Probe(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := c.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.User.UUID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate is Verify followed by the expiry check against the codec
// clock.
func (c *Codec) Authenticate(token string) (*Identity, error) {
	claims, err := c.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Expired(c.now()) {
		return nil, ErrExpiredToken
	}
	identity := claims.User
	return &identity, nil
}
