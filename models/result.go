package models

import "time"

// MatchResult is one player's point total for one match date. There is at
// most one row per (player, date); re-submission overwrites points.
type MatchResult struct {
	ID           int       `json:"id"`
	GameID       int       `json:"game_id"`
	PlayerID     int       `json:"player_id"`
	PlayerName   string    `json:"player,omitempty"`
	PlayerActive bool      `json:"-"`
	MatchDate    time.Time `json:"match_date"`
	Points       int       `json:"points"`
	SubmittedBy  int       `json:"submitted_by"`
}

// PlayerResult is a single entry of a result submission.
type PlayerResult struct {
	PlayerID int `json:"player_id"`
	Points   int `json:"points"`
}

// MatchTotal is the summed points of all players for one match date.
type MatchTotal struct {
	MatchDate   time.Time `json:"match_date"`
	TotalPoints int       `json:"total_points"`
}
