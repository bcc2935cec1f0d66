package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/security"
)

func adminPrincipal() *security.Principal {
	return &security.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin}
}

func regularPrincipal() *security.Principal {
	return &security.Principal{UserID: 2, Username: "user", Role: domain.RoleUser}
}

func TestUserServiceCreate(t *testing.T) {
	t.Run("non-admin cannot create admin", func(t *testing.T) {
		svc := NewUserService(&stubUserRepository{}, 4)

		_, err := svc.Create(context.Background(), CreateUserInput{Username: "x", Password: "p", IsAdmin: true}, regularPrincipal())
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
		if permErr.Table != "users" || permErr.Operation != "CREATE" || permErr.UserID != 2 {
			t.Fatalf("unexpected permission error fields: %+v", permErr)
		}
	})

	t.Run("admin creates admin with hashed password", func(t *testing.T) {
		var created *domain.User
		repo := &stubUserRepository{
			createFn: func(u *domain.User) error {
				created = u
				u.ID = 10
				return nil
			},
		}
		svc := NewUserService(repo, 4)

		u, err := svc.Create(context.Background(), CreateUserInput{
			Username: "new-admin",
			Email:    "na@example.com",
			Password: "secret",
			IsAdmin:  true,
		}, adminPrincipal())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if u.ID != 10 || !u.IsAdmin {
			t.Fatalf("unexpected user: %+v", u)
		}
		if created.PasswordHash == "secret" || created.PasswordHash == "" {
			t.Fatal("expected password to be hashed")
		}
		if !security.CheckPassword(created.PasswordHash, "secret") {
			t.Fatal("expected stored hash to verify the password")
		}
	})

	t.Run("non-admin creates regular user", func(t *testing.T) {
		repo := &stubUserRepository{
			createFn: func(u *domain.User) error { return nil },
		}
		svc := NewUserService(repo, 4)

		if _, err := svc.Create(context.Background(), CreateUserInput{Username: "x", Password: "p"}, regularPrincipal()); err != nil {
			t.Fatalf("Create: %v", err)
		}
	})
}

func TestUserServiceUpdate(t *testing.T) {
	t.Run("non-admin cannot grant admin", func(t *testing.T) {
		svc := NewUserService(&stubUserRepository{}, 4)

		yes := true
		_, err := svc.Update(context.Background(), 2, UpdateUserInput{IsAdmin: &yes}, regularPrincipal())
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
		if permErr.Operation != "UPDATE" {
			t.Fatalf("unexpected operation %q", permErr.Operation)
		}
	})

	t.Run("applies only set fields", func(t *testing.T) {
		stored := &domain.User{ID: 2, Username: "user", Email: "old@example.com", FirstName: "Old", PasswordHash: "hash"}
		var updated *domain.User
		repo := &stubUserRepository{
			findByIDFn: func(uint) (*domain.User, error) {
				u := *stored
				return &u, nil
			},
			updateFn: func(u *domain.User) error {
				updated = u
				return nil
			},
		}
		svc := NewUserService(repo, 4)

		email := "new@example.com"
		if _, err := svc.Update(context.Background(), 2, UpdateUserInput{Email: &email}, regularPrincipal()); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Email != "new@example.com" {
			t.Fatalf("expected email updated, got %q", updated.Email)
		}
		if updated.FirstName != "Old" || updated.PasswordHash != "hash" {
			t.Fatalf("expected untouched fields preserved: %+v", updated)
		}
	})

	t.Run("password update rehashes", func(t *testing.T) {
		stored := &domain.User{ID: 2, Username: "user", PasswordHash: "old-hash"}
		var updated *domain.User
		repo := &stubUserRepository{
			findByIDFn: func(uint) (*domain.User, error) {
				u := *stored
				return &u, nil
			},
			updateFn: func(u *domain.User) error {
				updated = u
				return nil
			},
		}
		svc := NewUserService(repo, 4)

		pw := "new-password"
		if _, err := svc.Update(context.Background(), 2, UpdateUserInput{Password: &pw}, adminPrincipal()); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if !security.CheckPassword(updated.PasswordHash, "new-password") {
			t.Fatal("expected new hash to verify new password")
		}
	})

	t.Run("missing user propagates not found", func(t *testing.T) {
		repo := &stubUserRepository{
			findByIDFn: func(uint) (*domain.User, error) { return nil, repository.ErrUserNotFound },
		}
		svc := NewUserService(repo, 4)

		if _, err := svc.Update(context.Background(), 99, UpdateUserInput{}, adminPrincipal()); !errors.Is(err, repository.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserServiceListDelegates(t *testing.T) {
	repo := &stubUserRepository{
		listPagedFn: func(req repository.PageRequest) (repository.PageResult[domain.User], error) {
			if req.Limit != 5 || req.Offset != 10 {
				t.Fatalf("unexpected page request: %+v", req)
			}
			return repository.PageResult[domain.User]{
				Items:   []domain.User{{ID: 1}, {ID: 2}},
				HasMore: true,
			}, nil
		},
	}
	svc := NewUserService(repo, 4)

	page, err := svc.List(context.Background(), repository.PageRequest{Limit: 5, Offset: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 2 || !page.HasMore {
		t.Fatalf("unexpected page: %+v", page)
	}
}
