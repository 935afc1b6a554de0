package services

import (
	"errors"
	"fmt"
	"strings"
)

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrMissingFields       = errors.New("missing required fields")
	ErrMissingDate         = errors.New("missing date")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNoPlayersSelected   = errors.New("no players selected")
	ErrNoValidPlayers      = errors.New("no valid players found")
	ErrGameNameRequired    = errors.New("game name is required")
	ErrInvalidInviteCode   = errors.New("invalid invite code")
	ErrInvalidMemberRole   = errors.New("invalid member role")
	ErrCannotChangeOwnRole = errors.New("you cannot change your own role")
	ErrUploadsDisabled     = errors.New("logo uploads are not configured")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrAdminRequired      = errors.New("admin access required")
	ErrGameAdminRequired  = errors.New("only game admins can perform this action")

	// Entity-specific lookups
	ErrUserNotFound   = errors.New("user not found")
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMemberNotFound = errors.New("game member not found")
)

// PointTotalError rejects a whole result submission whose point total does
// not match the budget for its league size.
type PointTotalError struct {
	Players  int
	Total    int
	Expected []int
}

func (e *PointTotalError) Error() string {
	allowed := make([]string, len(e.Expected))
	for i, v := range e.Expected {
		allowed[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%d players must have %s total points (Current: %d)",
		e.Players, strings.Join(allowed, " or "), e.Total)
}
