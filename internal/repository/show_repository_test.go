package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/rhyn0/anime-rest-api/internal/domain"
)

func seedShow(t *testing.T, repo ShowRepository, name string) *domain.Show {
	t.Helper()
	s := &domain.Show{
		Name:          name,
		ReleaseDate:   time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
		ShowType:      domain.ShowTypeTV,
		Status:        domain.ShowStatusAiring,
		ContentRating: domain.ContentRatingPG13,
	}
	if err := repo.Create(s); err != nil {
		t.Fatalf("create show %s: %v", name, err)
	}
	return s
}

func TestShowRepositoryCRUD(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewShowRepository(db)

	created := seedShow(t, repo, "Cowboy Bebop")
	if created.ID == 0 {
		t.Fatal("expected assigned primary key")
	}

	got, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Name != "Cowboy Bebop" || got.ShowType != domain.ShowTypeTV {
		t.Fatalf("unexpected show: %+v", got)
	}

	finish := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	got.Status = domain.ShowStatusFinished
	got.FinishDate = &finish
	if err := repo.Update(got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if updated.Status != domain.ShowStatusFinished || updated.FinishDate == nil {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := repo.Update(&domain.Show{ID: 9999, Name: "x"}); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("expected ErrShowNotFound on update, got %v", err)
	}

	deleted, err := repo.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Name != "Cowboy Bebop" {
		t.Fatalf("expected deleted record returned, got %+v", deleted)
	}
	if _, err := repo.FindByID(created.ID); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("expected show gone, got %v", err)
	}
}

func TestShowRepositoryListPaged(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewShowRepository(db)

	for _, name := range []string{"one", "two", "three"} {
		seedShow(t, repo, name)
	}

	page, err := repo.ListPaged(PageRequest{Limit: 2})
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(page.Items) != 2 || !page.HasMore {
		t.Fatalf("expected first page of 2 with more, got %d hasMore=%v", len(page.Items), page.HasMore)
	}

	page, err = repo.ListPaged(PageRequest{Limit: 10, Offset: 2})
	if err != nil {
		t.Fatalf("list paged offset: %v", err)
	}
	if len(page.Items) != 1 || page.HasMore {
		t.Fatalf("expected final page of 1, got %d hasMore=%v", len(page.Items), page.HasMore)
	}
}
