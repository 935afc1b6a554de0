package models

// BalanceResult is the output of a team balancing run: two teams with their
// rank sums and the absolute difference between them.
type BalanceResult struct {
	Team1      []RankedPlayer `json:"team1"`
	Team2      []RankedPlayer `json:"team2"`
	Total1     int            `json:"total1"`
	Total2     int            `json:"total2"`
	Difference int            `json:"difference"`
}
