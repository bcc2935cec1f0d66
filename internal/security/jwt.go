package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rhyn0/anime-rest-api/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

// UserDetails are the display fields embedded in an access token so callers
// can render the logged-in user without a database round trip.
type UserDetails struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AccessClaims struct {
	jwt.RegisteredClaims
	Scope string      `json:"scope"`
	Role  string      `json:"role"`
	User  UserDetails `json:"user"`
}

func (c *AccessClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	Scope          string `json:"scope"`
	SessionVersion int    `json:"session_version"`
}

func (c *RefreshClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// JWTManager signs and verifies the two token shapes with a single shared
// HMAC-SHA256 secret. Claim validation is done by hand after signature
// verification so the expired-access parse path cannot skip issuer and
// audience checks along with the deadline.
type JWTManager struct {
	issuer     string
	audience   string
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	parser     *jwt.Parser
}

func NewJWTManager(issuer, audience, secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		issuer:     issuer,
		audience:   audience,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

func (m *JWTManager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *JWTManager) RefreshTTL() time.Duration { return m.refreshTTL }

// SignAccessToken returns the signed token and its expiry in epoch seconds.
func (m *JWTManager) SignAccessToken(user *domain.User, now time.Time) (string, int64, error) {
	now = now.UTC()
	exp := now.Add(m.accessTTL)
	claims := &AccessClaims{
		RegisteredClaims: m.registeredClaims(user.ID, now, exp),
		Scope:            ScopeAccess,
		Role:             user.Role(),
		User:             UserDetails{Username: user.Username, Email: user.Email},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign access token: %w", err)
	}
	return raw, exp.Unix(), nil
}

// SignRefreshToken snapshots the user's current session version into the
// token; Refresh later requires the stored version to still match.
func (m *JWTManager) SignRefreshToken(user *domain.User, now time.Time) (string, int64, error) {
	now = now.UTC()
	exp := now.Add(m.refreshTTL)
	claims := &RefreshClaims{
		RegisteredClaims: m.registeredClaims(user.ID, now, exp),
		Scope:            ScopeRefresh,
		SessionVersion:   user.SessionVersion,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign refresh token: %w", err)
	}
	return raw, exp.Unix(), nil
}

// ParseAccessToken verifies signature, issuer, audience, required claims and
// expiry. Returns ErrExpiredToken only when everything else checked out and
// the deadline has passed; any other failure is ErrInvalidToken.
func (m *JWTManager) ParseAccessToken(raw string) (*AccessClaims, error) {
	return m.parseAccess(raw, true, time.Now())
}

// ParseExpiredAccessToken skips only the expiry deadline. It exists for the
// refresh flow to recover the identity inside an already-expired access token
// and must never be used to authorize a request.
func (m *JWTManager) ParseExpiredAccessToken(raw string) (*AccessClaims, error) {
	return m.parseAccess(raw, false, time.Now())
}

func (m *JWTManager) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	return m.parseRefresh(raw, time.Now())
}

func (m *JWTManager) parseAccess(raw string, verifyExpiry bool, now time.Time) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, err := m.parser.ParseWithClaims(raw, claims, m.keyFunc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if err := m.validateEnvelope(&claims.RegisteredClaims, claims.Scope, ScopeAccess, verifyExpiry, now); err != nil {
		return nil, err
	}
	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleUser {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) parseRefresh(raw string, now time.Time) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if _, err := m.parser.ParseWithClaims(raw, claims, m.keyFunc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if err := m.validateEnvelope(&claims.RegisteredClaims, claims.Scope, ScopeRefresh, true, now); err != nil {
		return nil, err
	}
	if claims.SessionVersion < 1 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// validateEnvelope checks the claims shared by both token shapes. Expiry is
// evaluated last so ErrExpiredToken is only reported for otherwise-valid
// tokens; exp must be present even when the deadline itself is skipped.
func (m *JWTManager) validateEnvelope(reg *jwt.RegisteredClaims, scope, wantScope string, verifyExpiry bool, now time.Time) error {
	if scope != wantScope {
		return ErrInvalidToken
	}
	if reg.Issuer != m.issuer {
		return ErrInvalidToken
	}
	if !audienceContains(reg.Audience, m.audience) {
		return ErrInvalidToken
	}
	if reg.Subject == "" {
		return ErrInvalidToken
	}
	if reg.IssuedAt == nil || reg.IssuedAt.Unix() <= 0 {
		return ErrInvalidToken
	}
	if reg.ExpiresAt == nil {
		return ErrInvalidToken
	}
	if verifyExpiry && !now.Before(reg.ExpiresAt.Time) {
		return ErrExpiredToken
	}
	return nil
}

func (m *JWTManager) registeredClaims(userID uint, now, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    m.issuer,
		Audience:  jwt.ClaimStrings{m.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}

func (m *JWTManager) keyFunc(_ *jwt.Token) (interface{}, error) {
	return m.secret, nil
}

func audienceContains(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
