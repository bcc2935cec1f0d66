package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Detail
}

type stubSessionService struct {
	login   func(ctx context.Context, username, password string) (*service.TokenPair, error)
	refresh func(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	logout  func(ctx context.Context, userID uint) error
}

func (s *stubSessionService) Login(ctx context.Context, username, password string) (*service.TokenPair, error) {
	return s.login(ctx, username, password)
}

func (s *stubSessionService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	return s.refresh(ctx, refreshToken)
}

func (s *stubSessionService) Logout(ctx context.Context, userID uint) error {
	return s.logout(ctx, userID)
}

type stubShowService struct {
	create  func(ctx context.Context, in service.CreateShowInput) (*domain.Show, error)
	getByID func(ctx context.Context, id uint) (*domain.Show, error)
	list    func(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Show], error)
	update  func(ctx context.Context, id uint, in service.UpdateShowInput) (*domain.Show, error)
	delete  func(ctx context.Context, id uint) (*domain.Show, error)
}

func (s *stubShowService) Create(ctx context.Context, in service.CreateShowInput) (*domain.Show, error) {
	return s.create(ctx, in)
}

func (s *stubShowService) GetByID(ctx context.Context, id uint) (*domain.Show, error) {
	return s.getByID(ctx, id)
}

func (s *stubShowService) List(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Show], error) {
	return s.list(ctx, req)
}

func (s *stubShowService) Update(ctx context.Context, id uint, in service.UpdateShowInput) (*domain.Show, error) {
	return s.update(ctx, id, in)
}

func (s *stubShowService) Delete(ctx context.Context, id uint) (*domain.Show, error) {
	return s.delete(ctx, id)
}
