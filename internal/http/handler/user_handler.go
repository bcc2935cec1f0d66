package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/http/middleware"
	"github.com/rhyn0/anime-rest-api/internal/http/response"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/service"
)

type UserHandler struct {
	users  service.UserServiceInterface
	logger *slog.Logger
}

func NewUserHandler(users service.UserServiceInterface, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type userListResponse struct {
	Users   []domain.User `json:"users"`
	Count   int           `json:"count"`
	HasMore bool          `json:"has_more"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := pageParams(r)
	if err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}
	page, err := h.users.List(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list users failed", "error", err)
		response.Detail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.JSON(w, r, http.StatusOK, userListResponse{
		Users:   page.Items,
		Count:   len(page.Items),
		HasMore: page.HasMore,
	})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Detail(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var in service.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Username == "" || in.Email == "" || in.Password == "" {
		response.Detail(w, r, http.StatusBadRequest, "username, email and password are required")
		return
	}
	user, err := h.users.Create(r.Context(), in, principal)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "user_id")
	if !ok {
		response.Detail(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Detail(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	id, ok := idParam(r, "user_id")
	if !ok {
		response.Detail(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	var in service.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.users.Update(r.Context(), id, in, principal)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "user_id")
	if !ok {
		response.Detail(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	var permErr *service.PermissionError
	switch {
	case errors.As(err, &permErr):
		h.logger.WarnContext(r.Context(), "permission denied",
			"table", permErr.Table, "operation", permErr.Operation, "user_id", permErr.UserID)
		response.Detail(w, r, http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, repository.ErrUserNotFound):
		response.Detail(w, r, http.StatusNotFound, "User not found")
	case errors.Is(err, repository.ErrUserDuplicate):
		response.Detail(w, r, http.StatusConflict, "Username or email already exists")
	default:
		h.logger.ErrorContext(r.Context(), "user operation failed", "error", err)
		response.Detail(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
