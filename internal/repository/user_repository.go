package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/observability"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserDuplicate = errors.New("username or email already exists")
)

type UserRepository interface {
	Create(u *domain.User) error
	FindByID(id uint) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	ListPaged(req PageRequest) (PageResult[domain.User], error)
	Update(u *domain.User) error
	Delete(id uint) (*domain.User, error)
	IncrementSessionVersion(id uint) (*domain.User, error)
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(u *domain.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			observability.RecordRepositoryOperation(context.Background(), "users", "create", "duplicate")
			return ErrUserDuplicate
		}
		observability.RecordRepositoryOperation(context.Background(), "users", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "users", "create", "success")
	return nil
}

func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "users", "find_by_id", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "users", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "users", "find_by_id", "success")
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "users", "find_by_username", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "users", "find_by_username", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "users", "find_by_username", "success")
	return &user, nil
}

func (r *GormUserRepository) ListPaged(req PageRequest) (PageResult[domain.User], error) {
	req = normalizePageRequest(req)
	var users []domain.User
	err := r.db.Order("id asc").Offset(req.Offset).Limit(req.Limit + 1).Find(&users).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "users", "list", "error")
		return PageResult[domain.User]{}, err
	}
	observability.RecordRepositoryOperation(context.Background(), "users", "list", "success")
	return pageFromRows(users, req), nil
}

func (r *GormUserRepository) Update(u *domain.User) error {
	res := r.db.Model(&domain.User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"email":         u.Email,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"password_hash": u.PasswordHash,
		"is_admin":      u.IsAdmin,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			observability.RecordRepositoryOperation(context.Background(), "users", "update", "duplicate")
			return ErrUserDuplicate
		}
		observability.RecordRepositoryOperation(context.Background(), "users", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "users", "update", "not_found")
		return ErrUserNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "users", "update", "success")
	return nil
}

func (r *GormUserRepository) Delete(id uint) (*domain.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	res := r.db.Delete(&domain.User{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "users", "delete", "error")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "users", "delete", "not_found")
		return nil, ErrUserNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "users", "delete", "success")
	return user, nil
}

// IncrementSessionVersion applies the bump as a single UPDATE statement so
// concurrent logouts for the same user each advance the counter by one.
func (r *GormUserRepository) IncrementSessionVersion(id uint) (*domain.User, error) {
	res := r.db.Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("session_version", gorm.Expr("session_version + ?", 1))
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "users", "increment_session_version", "error")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "users", "increment_session_version", "not_found")
		return nil, ErrUserNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "users", "increment_session_version", "success")
	return r.FindByID(id)
}
