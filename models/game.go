package models

import "time"

type MemberRole string

const (
	RoleAdmin    MemberRole = "Admin"
	RoleReadOnly MemberRole = "Read-only"
)

type Game struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID int       `json:"owner_user_id"`
	InviteCode  string    `json:"invite_code"`
	CreatedAt   time.Time `json:"created_at"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}

type GameMember struct {
	UserID   int        `json:"user_id"`
	GameID   int        `json:"game_id"`
	Username string     `json:"username"`
	Role     MemberRole `json:"role"`
}
