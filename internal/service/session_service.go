package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/observability"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/security"
)

var (
	// ErrInvalidCredentials covers unknown username and wrong password
	// alike; callers must not be able to tell which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRefreshToken collapses decode failure, expiry, missing
	// user and version mismatch into one answer for the same reason.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type TokenPair struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresAt        int64  `json:"expiresAt"`
	RefreshExpiresAt int64  `json:"refreshExpiresAt"`
	Version          int    `json:"version"`
}

type SessionServiceInterface interface {
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uint) error
}

// SessionService owns the login/refresh/logout lifecycle. It keeps no state
// of its own; durability lives entirely in the user repository.
type SessionService struct {
	users  repository.UserRepository
	jwtMgr *security.JWTManager
	logger *slog.Logger
	now    func() time.Time
}

func NewSessionService(users repository.UserRepository, jwtMgr *security.JWTManager, logger *slog.Logger) *SessionService {
	return &SessionService{
		users:  users,
		jwtMgr: jwtMgr,
		logger: logger,
		now:    time.Now,
	}
}

func (s *SessionService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthEvent(ctx, "login", "invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		observability.RecordAuthEvent(ctx, "login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", "user_id", user.ID, "session_version", user.SessionVersion)
	observability.RecordAuthEvent(ctx, "login", "success")
	return pair, nil
}

// Refresh validates in a fixed order: decode, expiry ceiling, user lookup,
// then version equality. Expiry wins over a matching version, and every
// failure reports the same error so no single check leaks.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtMgr.ParseRefreshToken(refreshToken)
	if err != nil {
		observability.RecordAuthEvent(ctx, "refresh", "invalid_token")
		return nil, ErrInvalidRefreshToken
	}
	// the parser already enforces expiry; re-check here so a future
	// clock-skew-tolerant decode path cannot widen the window
	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		observability.RecordAuthEvent(ctx, "refresh", "expired")
		return nil, ErrInvalidRefreshToken
	}

	userID, err := claims.UserID()
	if err != nil {
		observability.RecordAuthEvent(ctx, "refresh", "invalid_token")
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthEvent(ctx, "refresh", "unknown_user")
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if claims.SessionVersion != user.SessionVersion {
		observability.RecordAuthEvent(ctx, "refresh", "version_mismatch")
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("session refreshed", "user_id", user.ID, "session_version", user.SessionVersion)
	observability.RecordAuthEvent(ctx, "refresh", "success")
	return pair, nil
}

// Logout bumps the stored session version, permanently invalidating every
// refresh token minted before the bump. Outstanding access tokens stay
// valid until their own expiry; that blast radius is bounded by the access
// TTL and is an accepted property of version-gated revocation.
func (s *SessionService) Logout(ctx context.Context, userID uint) error {
	user, err := s.users.IncrementSessionVersion(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthEvent(ctx, "logout", "unknown_user")
		}
		return err
	}
	s.logger.Info("user logged out", "user_id", user.ID, "session_version", user.SessionVersion)
	observability.RecordAuthEvent(ctx, "logout", "success")
	observability.RecordSessionVersionBump(ctx)
	return nil
}

// issuePair mints both tokens from the user's current state, so a refresh
// after a role change or version bump reflects the latest record.
func (s *SessionService) issuePair(user *domain.User) (*TokenPair, error) {
	now := s.now()
	access, accessExp, err := s.jwtMgr.SignAccessToken(user, now)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.jwtMgr.SignRefreshToken(user, now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresAt:        accessExp,
		RefreshExpiresAt: refreshExp,
		Version:          user.SessionVersion,
	}, nil
}
