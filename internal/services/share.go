package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	shareIssuer   = "songsmith-api"
	shareAudience = "composition-download"
)

var (
	ErrSharingDisabled = errors.New("share links are not configured")
	ErrInvalidShare    = errors.New("invalid or expired share token")
)

// ShareClaims grants download access to one composition.
type ShareClaims struct {
	CompositionID string `json:"cid"`
	jwt.RegisteredClaims
}

// ShareService signs and verifies download tokens with HS256.
type ShareService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewShareService(secret string, ttl time.Duration) *ShareService {
	return &ShareService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Enabled reports whether a signing secret is configured.
func (s *ShareService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Issue returns a token for compositionID and its expiry.
func (s *ShareService) Issue(compositionID string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrSharingDisabled
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := ShareClaims{
		CompositionID: compositionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    shareIssuer,
			Subject:   compositionID,
			Audience:  jwt.ClaimStrings{shareAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign share token: %w", err)
	}
	return token, expires, nil
}

// Verify checks the token and returns the composition it grants.
func (s *ShareService) Verify(token string) (string, error) {
	if !s.Enabled() {
		return "", ErrSharingDisabled
	}

	claims := &ShareClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(shareIssuer),
		jwt.WithAudience(shareAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.CompositionID == "" {
		return "", ErrInvalidShare
	}
	return claims.CompositionID, nil
}
