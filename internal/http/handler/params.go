package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rhyn0/anime-rest-api/internal/repository"
)

var errInvalidPagination = errors.New("invalid pagination parameters")

// idParam reads a numeric chi URL parameter. ok is false when the segment is
// not a positive integer.
func idParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads limit/offset query parameters. Absent values take the
// repository defaults; non-numeric or out-of-range values (limit outside
// 1..MaxLimit, offset below 0) are rejected rather than clamped.
func pageParams(r *http.Request) (repository.PageRequest, error) {
	req := repository.PageRequest{
		Limit:  repository.DefaultLimit,
		Offset: repository.DefaultOffset,
	}
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > repository.MaxLimit {
			return repository.PageRequest{}, errInvalidPagination
		}
		req.Limit = v
	}
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return repository.PageRequest{}, errInvalidPagination
		}
		req.Offset = v
	}
	return req, nil
}
