package service

import (
	"context"
	"fmt"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/security"
)

// PermissionError reports a role-gated operation denied to a non-admin;
// the fields feed audit logging at the boundary.
type PermissionError struct {
	Table     string
	Operation string
	UserID    uint
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d lacks permission for %s on %s", e.UserID, e.Operation, e.Table)
}

type CreateUserInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin"`
}

// UpdateUserInput uses pointers so only the fields present in the request
// are applied.
type UpdateUserInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

type UserServiceInterface interface {
	Create(ctx context.Context, in CreateUserInput, requester *security.Principal) (*domain.User, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.User], error)
	Update(ctx context.Context, id uint, in UpdateUserInput, requester *security.Principal) (*domain.User, error)
	Delete(ctx context.Context, id uint) (*domain.User, error)
}

type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

func (s *UserService) Create(_ context.Context, in CreateUserInput, requester *security.Principal) (*domain.User, error) {
	// regular accounts cannot mint extra admin accounts
	if in.IsAdmin && !requester.IsAdmin() {
		return nil, &PermissionError{Table: "users", Operation: "CREATE", UserID: requester.UserID}
	}
	hash, err := security.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(_ context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(id)
}

func (s *UserService) List(_ context.Context, req repository.PageRequest) (repository.PageResult[domain.User], error) {
	return s.users.ListPaged(req)
}

func (s *UserService) Update(_ context.Context, id uint, in UpdateUserInput, requester *security.Principal) (*domain.User, error) {
	// only admins may grant admin
	if in.IsAdmin != nil && *in.IsAdmin && !requester.IsAdmin() {
		return nil, &PermissionError{Table: "users", Operation: "UPDATE", UserID: requester.UserID}
	}
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil {
		hash, err := security.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return s.users.FindByID(id)
}

func (s *UserService) Delete(_ context.Context, id uint) (*domain.User, error) {
	return s.users.Delete(id)
}
