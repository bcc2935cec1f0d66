package security

import "github.com/rhyn0/anime-rest-api/internal/domain"

// Principal is the per-request identity derived from a verified access
// token. It is rebuilt on every request and never persisted.
type Principal struct {
	UserID    uint
	Username  string
	Email     string
	Role      string
	IssuedAt  int64
	ExpiresAt int64
}

func NewPrincipal(claims *AccessClaims) (*Principal, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return &Principal{
		UserID:    id,
		Username:  claims.User.Username,
		Email:     claims.User.Email,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (p *Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}
