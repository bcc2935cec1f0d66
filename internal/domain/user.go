package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the auth record backing both CRUD and the session lifecycle.
// SessionVersion starts at 1 and only ever moves forward; bumping it
// invalidates every refresh token minted at an earlier version.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"user_id"`
	Username       string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName      string    `gorm:"size:64" json:"first_name"`
	LastName       string    `gorm:"size:64" json:"last_name"`
	PasswordHash   string    `gorm:"size:128;not null" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"is_admin"`
	SessionVersion int       `gorm:"not null;default:1" json:"session_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
