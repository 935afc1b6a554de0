package engine

import (
	"sort"

	"github.com/markdarcy45-oss/Teams/models"
)

// GreedyBalancer sorts the pool by rank descending and appends each player
// to the team with the smaller running sum (ties favor team1). Deterministic
// and O(n log n), but can be less balanced than the randomized search.
type GreedyBalancer struct{}

func NewGreedyBalancer() *GreedyBalancer {
	return &GreedyBalancer{}
}

func (b *GreedyBalancer) GetName() string {
	return "Greedy"
}

func (b *GreedyBalancer) Balance(pool []models.RankedPlayer) (*models.BalanceResult, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	sorted := make([]models.RankedPlayer, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	half := len(pool) / 2
	team2Cap := len(pool) - half

	var team1, team2 []models.RankedPlayer
	sum1, sum2 := 0, 0

	for _, p := range sorted {
		// Respect the size split: team1 gets floor(n/2) players.
		switch {
		case len(team1) == half:
			team2 = append(team2, p)
			sum2 += p.Rank
		case len(team2) == team2Cap:
			team1 = append(team1, p)
			sum1 += p.Rank
		case sum1 <= sum2:
			team1 = append(team1, p)
			sum1 += p.Rank
		default:
			team2 = append(team2, p)
			sum2 += p.Rank
		}
	}

	diff := sum1 - sum2
	if diff < 0 {
		diff = -diff
	}

	return newBalanceResult(team1, team2, sum1, sum2, diff), nil
}
