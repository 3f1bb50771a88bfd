package clerk

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

type SessionVerifierConfig struct {
	// PublicKeyPEM is the instance's JWT verification key (PKIX or PKCS1).
	PublicKeyPEM      string
	AuthorizedParties []string
	Leeway            time.Duration
}

type sessionClaims struct {
	SessionID       string `json:"sid"`
	AuthorizedParty string `json:"azp"`
	jwt.RegisteredClaims
}

// SessionVerifier validates Clerk session tokens networklessly.
type SessionVerifier struct {
	key     *rsa.PublicKey
	parties map[string]struct{}
	leeway  time.Duration
	parser  *jwt.Parser
	now     func() time.Time
}

func NewSessionVerifier(cfg SessionVerifierConfig) (*SessionVerifier, error) {
	pemText := strings.TrimSpace(strings.ReplaceAll(cfg.PublicKeyPEM, `\n`, "\n"))
	if pemText == "" {
		return nil, fmt.Errorf("clerk jwt public key is required")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemText))
	if err != nil {
		return nil, fmt.Errorf("parse clerk jwt public key: %w", err)
	}

	parties := make(map[string]struct{}, len(cfg.AuthorizedParties))
	for _, party := range cfg.AuthorizedParties {
		party = strings.TrimRight(strings.TrimSpace(party), "/")
		if party != "" {
			parties[party] = struct{}{}
		}
	}

	leeway := cfg.Leeway
	if leeway < 0 {
		leeway = 0
	}

	return &SessionVerifier{
		key:     key,
		parties: parties,
		leeway:  leeway,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}, nil
}

// Verify checks signature, expiry and authorized party. Every rejection
// wraps usecase.ErrUnauthorized.
func (v *SessionVerifier) Verify(_ context.Context, token string) (user.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Session{}, fmt.Errorf("%w: session token is required", usecase.ErrUnauthorized)
	}

	claims := &sessionClaims{}
	if _, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}); err != nil {
		return user.Session{}, fmt.Errorf("%w: parse session token: %v", usecase.ErrUnauthorized, err)
	}

	now := v.now()
	if !claims.VerifyExpiresAt(now.Add(-v.leeway), true) {
		return user.Session{}, fmt.Errorf("%w: session token expired", usecase.ErrUnauthorized)
	}
	if !claims.VerifyNotBefore(now.Add(v.leeway), false) {
		return user.Session{}, fmt.Errorf("%w: session token not yet valid", usecase.ErrUnauthorized)
	}
	if len(v.parties) > 0 && claims.AuthorizedParty != "" {
		if _, ok := v.parties[strings.TrimRight(claims.AuthorizedParty, "/")]; !ok {
			return user.Session{}, fmt.Errorf("%w: unauthorized party %q", usecase.ErrUnauthorized, claims.AuthorizedParty)
		}
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return user.Session{}, fmt.Errorf("%w: session token has no subject", usecase.ErrUnauthorized)
	}

	return user.Session{ExternalID: subject, SessionID: claims.SessionID}, nil
}
