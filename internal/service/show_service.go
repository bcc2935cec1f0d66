package service

import (
	"context"
	"time"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/repository"
)

type CreateShowInput struct {
	Name          string                   `json:"name"`
	ReleaseDate   time.Time                `json:"release_date"`
	FinishDate    *time.Time               `json:"finish_date"`
	ShowType      domain.ShowType          `json:"show_type"`
	Status        domain.ShowStatus        `json:"status"`
	ContentRating domain.ShowContentRating `json:"content_rating"`
}

type UpdateShowInput struct {
	Name          *string                   `json:"name"`
	ReleaseDate   *time.Time                `json:"release_date"`
	FinishDate    *time.Time                `json:"finish_date"`
	ShowType      *domain.ShowType          `json:"show_type"`
	Status        *domain.ShowStatus        `json:"status"`
	ContentRating *domain.ShowContentRating `json:"content_rating"`
}

type ShowServiceInterface interface {
	Create(ctx context.Context, in CreateShowInput) (*domain.Show, error)
	GetByID(ctx context.Context, id uint) (*domain.Show, error)
	List(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Show], error)
	Update(ctx context.Context, id uint, in UpdateShowInput) (*domain.Show, error)
	Delete(ctx context.Context, id uint) (*domain.Show, error)
}

type ShowService struct {
	shows repository.ShowRepository
}

func NewShowService(shows repository.ShowRepository) *ShowService {
	return &ShowService{shows: shows}
}

func (s *ShowService) Create(_ context.Context, in CreateShowInput) (*domain.Show, error) {
	show := &domain.Show{
		Name:          in.Name,
		ReleaseDate:   in.ReleaseDate,
		FinishDate:    in.FinishDate,
		ShowType:      in.ShowType,
		Status:        in.Status,
		ContentRating: in.ContentRating,
	}
	if err := s.shows.Create(show); err != nil {
		return nil, err
	}
	return show, nil
}

func (s *ShowService) GetByID(_ context.Context, id uint) (*domain.Show, error) {
	return s.shows.FindByID(id)
}

func (s *ShowService) List(_ context.Context, req repository.PageRequest) (repository.PageResult[domain.Show], error) {
	return s.shows.ListPaged(req)
}

func (s *ShowService) Update(_ context.Context, id uint, in UpdateShowInput) (*domain.Show, error) {
	show, err := s.shows.FindByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		show.Name = *in.Name
	}
	if in.ReleaseDate != nil {
		show.ReleaseDate = *in.ReleaseDate
	}
	if in.FinishDate != nil {
		show.FinishDate = in.FinishDate
	}
	if in.ShowType != nil {
		show.ShowType = *in.ShowType
	}
	if in.Status != nil {
		show.Status = *in.Status
	}
	if in.ContentRating != nil {
		show.ContentRating = *in.ContentRating
	}
	if err := s.shows.Update(show); err != nil {
		return nil, err
	}
	return show, nil
}

func (s *ShowService) Delete(_ context.Context, id uint) (*domain.Show, error) {
	return s.shows.Delete(id)
}
