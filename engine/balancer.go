package engine

import (
	"errors"
	"sort"
	"strings"

	"github.com/markdarcy45-oss/Teams/models"
)

var ErrEmptyPool = errors.New("player pool is empty, no teams to generate")

// TeamBalancer partitions a pool of ranked players into two teams while
// minimizing the difference of summed ranks. Team1 receives floor(n/2)
// players, so for an odd pool Team2 is one player larger.
type TeamBalancer interface {
	Balance(pool []models.RankedPlayer) (*models.BalanceResult, error)

	GetName() string
}

func rankSum(players []models.RankedPlayer) int {
	sum := 0
	for _, p := range players {
		sum += p.Rank
	}
	return sum
}

// sortForDisplay orders a team ascending by rank, then by name
// case-insensitively, so output is stable regardless of strategy.
func sortForDisplay(team []models.RankedPlayer) {
	sort.Slice(team, func(i, j int) bool {
		if team[i].Rank != team[j].Rank {
			return team[i].Rank < team[j].Rank
		}
		return strings.ToLower(team[i].Name) < strings.ToLower(team[j].Name)
	})
}

func newBalanceResult(team1, team2 []models.RankedPlayer, sum1, sum2, diff int) *models.BalanceResult {
	sortForDisplay(team1)
	sortForDisplay(team2)
	return &models.BalanceResult{
		Team1:      team1,
		Team2:      team2,
		Total1:     sum1,
		Total2:     sum2,
		Difference: diff,
	}
}
