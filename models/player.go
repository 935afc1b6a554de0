package models

import "time"

type Player struct {
	ID        int       `json:"id"`
	GameID    int       `json:"game_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// RankedPlayer is a roster entry with its current skill rank.
// Rank 0 means the player is unranked (no recorded results yet).
type RankedPlayer struct {
	Name string `json:"player"`
	Rank int    `json:"rank"`
}
