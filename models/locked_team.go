package models

import "time"

const (
	TeamOrange = "Orange"
	TeamYellow = "Yellow"
)

// LockedTeamAssignment is the frozen output of a balancing run: one player's
// team membership for one match date. At most one assignment per (date, player).
type LockedTeamAssignment struct {
	ID         int       `json:"id"`
	MatchDate  time.Time `json:"date"`
	GameID     int       `json:"game_id"`
	PlayerID   int       `json:"player_id"`
	PlayerName string    `json:"name"`
	TeamName   string    `json:"team_name"`
	Slot       int       `json:"slot"`
	LockedBy   int       `json:"locked_by"`
}
