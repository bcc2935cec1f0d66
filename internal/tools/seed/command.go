// Package seed provides the database seeding command used to bootstrap a
// development or demo environment with known accounts and sample shows.
package seed

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rhyn0/anime-rest-api/internal/config"
	"github.com/rhyn0/anime-rest-api/internal/database"
	"github.com/rhyn0/anime-rest-api/internal/domain"
	"github.com/rhyn0/anime-rest-api/internal/security"
)

func NewCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with default accounts and sample shows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dryRun {
				for _, u := range defaultUsers() {
					fmt.Fprintf(cmd.OutOrStdout(), "would create user %q (admin=%v)\n", u.Username, u.IsAdmin)
				}
				for _, s := range defaultShows() {
					fmt.Fprintf(cmd.OutOrStdout(), "would create show %q\n", s.Name)
				}
				return nil
			}
			db, err := database.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			return Apply(db, cfg.BcryptCost)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be created without touching the database")
	return cmd
}

// Apply upserts the default accounts and sample shows. Existing rows are
// left alone so reseeding a live database is safe.
func Apply(db *gorm.DB, bcryptCost int) error {
	for _, u := range defaultUsers() {
		hash, err := security.HashPassword(u.password, bcryptCost)
		if err != nil {
			return err
		}
		user := domain.User{
			Username:     u.Username,
			Email:        u.Email,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			PasswordHash: hash,
			IsAdmin:      u.IsAdmin,
		}
		err = db.Where(domain.User{Username: u.Username}).FirstOrCreate(&user).Error
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}
	for _, s := range defaultShows() {
		show := s
		err := db.Where(domain.Show{Name: s.Name}).FirstOrCreate(&show).Error
		if err != nil {
			return fmt.Errorf("seed show %q: %w", s.Name, err)
		}
	}
	return nil
}

type seedUser struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	IsAdmin   bool
	password  string
}

func defaultUsers() []seedUser {
	return []seedUser{
		{
			Username:  "admin",
			Email:     "admin@example.com",
			FirstName: "Admin",
			LastName:  "User",
			IsAdmin:   true,
			password:  "adminpassword",
		},
		{
			Username:  "test",
			Email:     "test@example.com",
			FirstName: "Test",
			LastName:  "User",
			password:  "password",
		},
	}
}

func defaultShows() []domain.Show {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	cowboyBebopEnd := date(1999, time.April, 24)
	return []domain.Show{
		{
			Name:          "Cowboy Bebop",
			ReleaseDate:   date(1998, time.April, 3),
			FinishDate:    &cowboyBebopEnd,
			ShowType:      domain.ShowTypeTV,
			Status:        domain.ShowStatusFinished,
			ContentRating: domain.ContentRatingR,
		},
		{
			Name:          "Frieren: Beyond Journey's End",
			ReleaseDate:   date(2023, time.September, 29),
			ShowType:      domain.ShowTypeTV,
			Status:        domain.ShowStatusAiring,
			ContentRating: domain.ContentRatingPG13,
		},
		{
			Name:          "A Silent Voice",
			ReleaseDate:   date(2016, time.September, 17),
			ShowType:      domain.ShowTypeMovie,
			Status:        domain.ShowStatusFinished,
			ContentRating: domain.ContentRatingPG13,
		},
	}
}
