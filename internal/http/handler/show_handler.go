package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/http/response"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/service"
)

type ShowHandler struct {
	shows  service.ShowServiceInterface
	logger *slog.Logger
}

func NewShowHandler(shows service.ShowServiceInterface, logger *slog.Logger) *ShowHandler {
	return &ShowHandler{shows: shows, logger: logger}
}

type showListResponse struct {
	Shows   []domain.Show `json:"shows"`
	Count   int           `json:"count"`
	HasMore bool          `json:"has_more"`
}

func (h *ShowHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := pageParams(r)
	if err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}
	page, err := h.shows.List(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list shows failed", "error", err)
		response.Detail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.JSON(w, r, http.StatusOK, showListResponse{
		Shows:   page.Items,
		Count:   len(page.Items),
		HasMore: page.HasMore,
	})
}

func (h *ShowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateShowInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" {
		response.Detail(w, r, http.StatusBadRequest, "name is required")
		return
	}
	if msg, ok := validateShowEnums(&in.ShowType, &in.Status, &in.ContentRating); !ok {
		response.Detail(w, r, http.StatusBadRequest, msg)
		return
	}
	show, err := h.shows.Create(r.Context(), in)
	if err != nil {
		h.writeShowError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, show)
}

func (h *ShowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "show_id")
	if !ok {
		response.Detail(w, r, http.StatusBadRequest, "Invalid show id")
		return
	}
	show, err := h.shows.GetByID(r.Context(), id)
	if err != nil {
		h.writeShowError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, show)
}

func (h *ShowHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "show_id")
	if !ok {
		response.Detail(w, r, http.StatusBadRequest, "Invalid show id")
		return
	}
	var in service.UpdateShowInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Detail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg, ok := validateShowEnums(in.ShowType, in.Status, in.ContentRating); !ok {
		response.Detail(w, r, http.StatusBadRequest, msg)
		return
	}
	show, err := h.shows.Update(r.Context(), id, in)
	if err != nil {
		h.writeShowError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, show)
}

func (h *ShowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "show_id")
	if !ok {
		response.Detail(w, r, http.StatusBadRequest, "Invalid show id")
		return
	}
	show, err := h.shows.Delete(r.Context(), id)
	if err != nil {
		h.writeShowError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, show)
}

// validateShowEnums checks only the enum fields that are present; nil
// pointers mean "not part of this request" and pass.
func validateShowEnums(showType *domain.ShowType, status *domain.ShowStatus, rating *domain.ShowContentRating) (string, bool) {
	if showType != nil && !showType.Valid() {
		return "Invalid show_type", false
	}
	if status != nil && !status.Valid() {
		return "Invalid status", false
	}
	if rating != nil && !rating.Valid() {
		return "Invalid content_rating", false
	}
	return "", true
}

func (h *ShowHandler) writeShowError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrShowNotFound):
		response.Detail(w, r, http.StatusNotFound, "Show not found")
	default:
		h.logger.ErrorContext(r.Context(), "show operation failed", "error", err)
		response.Detail(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
