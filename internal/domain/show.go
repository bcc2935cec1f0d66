package domain

import "time"

type ShowType string

const (
	ShowTypeTV      ShowType = "TV"
	ShowTypeOVA     ShowType = "OVA"
	ShowTypeMovie   ShowType = "Movie"
	ShowTypeSpecial ShowType = "Special"
)

func (t ShowType) Valid() bool {
	switch t {
	case ShowTypeTV, ShowTypeOVA, ShowTypeMovie, ShowTypeSpecial:
		return true
	}
	return false
}

type ShowStatus string

const (
	ShowStatusFinished    ShowStatus = "Finished"
	ShowStatusAiring      ShowStatus = "Airing"
	ShowStatusNotYetAired ShowStatus = "NotYetAired"
)

func (s ShowStatus) Valid() bool {
	switch s {
	case ShowStatusFinished, ShowStatusAiring, ShowStatusNotYetAired:
		return true
	}
	return false
}

type ShowContentRating string

const (
	ContentRatingG    ShowContentRating = "G"
	ContentRatingPG   ShowContentRating = "PG"
	ContentRatingPG13 ShowContentRating = "PG13"
	ContentRatingR    ShowContentRating = "R"
	ContentRatingNC17 ShowContentRating = "NC17"
)

func (r ShowContentRating) Valid() bool {
	switch r {
	case ContentRatingG, ContentRatingPG, ContentRatingPG13, ContentRatingR, ContentRatingNC17:
		return true
	}
	return false
}

type Show struct {
	ID            uint              `gorm:"primaryKey" json:"show_id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	ReleaseDate   time.Time         `gorm:"not null" json:"release_date"`
	FinishDate    *time.Time        `json:"finish_date,omitempty"`
	ShowType      ShowType          `gorm:"size:16;not null" json:"show_type"`
	Status        ShowStatus        `gorm:"size:16;not null" json:"status"`
	ContentRating ShowContentRating `gorm:"size:8;not null" json:"content_rating"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
