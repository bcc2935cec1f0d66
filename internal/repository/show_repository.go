package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/observability"
)

var ErrShowNotFound = errors.New("show not found")

type ShowRepository interface {
	Create(s *domain.Show) error
	FindByID(id uint) (*domain.Show, error)
	ListPaged(req PageRequest) (PageResult[domain.Show], error)
	Update(s *domain.Show) error
	Delete(id uint) (*domain.Show, error)
}

type GormShowRepository struct{ db *gorm.DB }

func NewShowRepository(db *gorm.DB) ShowRepository {
	return &GormShowRepository{db: db}
}

func (r *GormShowRepository) Create(s *domain.Show) error {
	if err := r.db.Create(s).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "shows", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "shows", "create", "success")
	return nil
}

func (r *GormShowRepository) FindByID(id uint) (*domain.Show, error) {
	var show domain.Show
	if err := r.db.First(&show, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "shows", "find_by_id", "not_found")
			return nil, ErrShowNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "shows", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "shows", "find_by_id", "success")
	return &show, nil
}

func (r *GormShowRepository) ListPaged(req PageRequest) (PageResult[domain.Show], error) {
	req = normalizePageRequest(req)
	var shows []domain.Show
	err := r.db.Order("id asc").Offset(req.Offset).Limit(req.Limit + 1).Find(&shows).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "shows", "list", "error")
		return PageResult[domain.Show]{}, err
	}
	observability.RecordRepositoryOperation(context.Background(), "shows", "list", "success")
	return pageFromRows(shows, req), nil
}

func (r *GormShowRepository) Update(s *domain.Show) error {
	res := r.db.Model(&domain.Show{}).Where("id = ?", s.ID).Updates(map[string]any{
		"name":           s.Name,
		"release_date":   s.ReleaseDate,
		"finish_date":    s.FinishDate,
		"show_type":      s.ShowType,
		"status":         s.Status,
		"content_rating": s.ContentRating,
	})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "shows", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "shows", "update", "not_found")
		return ErrShowNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "shows", "update", "success")
	return nil
}

func (r *GormShowRepository) Delete(id uint) (*domain.Show, error) {
	show, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	res := r.db.Delete(&domain.Show{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "shows", "delete", "error")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "shows", "delete", "not_found")
		return nil, ErrShowNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "shows", "delete", "success")
	return show, nil
}
