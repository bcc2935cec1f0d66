package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rhyn0/anime-rest-api/internal/http/middleware"
	"github.com/rhyn0/anime-rest-api/internal/http/response"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/security"
	"github.com/rhyn0/anime-rest-api/internal/service"
)

// SessionHandler exposes the login/refresh/logout lifecycle over HTTP.
type SessionHandler struct {
	sessions service.SessionServiceInterface
	jwtMgr   *security.JWTManager
	logger   *slog.Logger
}

func NewSessionHandler(sessions service.SessionServiceInterface, jwtMgr *security.JWTManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, jwtMgr: jwtMgr, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	pair, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Detail(w, r, http.StatusBadRequest, "Invalid username or password")
			return
		}
		h.logger.ErrorContext(r.Context(), "login failed", "error", err)
		response.Detail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.JSON(w, r, http.StatusOK, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	// An access token accompanying the refresh call is usually expired by
	// now. Decode it without the deadline check purely for the audit trail;
	// it never grants anything.
	if raw := middleware.BearerToken(r); raw != "" {
		if claims, err := h.jwtMgr.ParseExpiredAccessToken(raw); err == nil {
			h.logger.DebugContext(r.Context(), "refresh presented access token", "subject", claims.Subject)
		}
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	pair, err := h.sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.Detail(w, r, http.StatusBadRequest, "Invalid refresh token")
			return
		}
		h.logger.ErrorContext(r.Context(), "refresh failed", "error", err)
		response.Detail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.JSON(w, r, http.StatusOK, pair)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Detail(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := h.sessions.Logout(r.Context(), principal.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Detail(w, r, http.StatusBadRequest, "Invalid logout target")
			return
		}
		h.logger.ErrorContext(r.Context(), "logout failed", "error", err, "user_id", principal.UserID)
		response.Detail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Text(w, r, http.StatusOK, "Success")
}
