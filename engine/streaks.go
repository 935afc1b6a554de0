package engine

import (
	"math"
	"sort"

	"github.com/markdarcy45-oss/Teams/models"
)

// Match outcomes are derived from the stored point total: exactly 3 points
// is a win, exactly 0 is a loss. Any other value (e.g. a draw bonus) counts
// as neither for streak purposes.
const (
	winPoints  = 3
	lossPoints = 0
)

// byPlayerChronological groups results per player, each group ordered by
// match date ascending. The (player, date) uniqueness of the results table
// means every group entry is a distinct match date.
func byPlayerChronological(results []models.MatchResult) map[string][]models.MatchResult {
	grouped := make(map[string][]models.MatchResult)
	for _, r := range results {
		grouped[r.PlayerName] = append(grouped[r.PlayerName], r)
	}
	for _, seq := range grouped {
		sort.Slice(seq, func(i, j int) bool {
			return seq[i].MatchDate.Before(seq[j].MatchDate)
		})
	}
	return grouped
}

// longestRun returns the length of the longest maximal run of matches for
// which match(points) holds, walking the chronological sequence and
// resetting on every outcome change.
func longestRun(seq []models.MatchResult, match func(points int) bool) int {
	longest, current := 0, 0
	for _, r := range seq {
		if match(r.Points) {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// bestAcrossPlayers reduces per-player values to the single maximum. Ties
// go to the lexicographically smaller name so the result is deterministic.
func bestAcrossPlayers(values map[string]int) models.StreakRecord {
	best := models.StreakRecord{}
	for player, v := range values {
		if v > best.Streak || (v == best.Streak && v > 0 && player < best.Player) {
			best = models.StreakRecord{Player: player, Streak: v}
		}
	}
	return best
}

// LongestWinStreak reports the player with the longest run of consecutive
// wins across their entire history. With no qualifying results the zero
// record is returned.
func LongestWinStreak(results []models.MatchResult) models.StreakRecord {
	streaks := make(map[string]int)
	for player, seq := range byPlayerChronological(results) {
		streaks[player] = longestRun(seq, func(p int) bool { return p == winPoints })
	}
	return bestAcrossPlayers(streaks)
}

// LongestLossStreak is LongestWinStreak for runs of consecutive losses.
func LongestLossStreak(results []models.MatchResult) models.StreakRecord {
	streaks := make(map[string]int)
	for player, seq := range byPlayerChronological(results) {
		streaks[player] = longestRun(seq, func(p int) bool { return p == lossPoints })
	}
	return bestAcrossPlayers(streaks)
}

// LongestGameStreak reports the player with the most recorded match dates.
// The participation streak is a raw count, not a consecutive-calendar check.
func LongestGameStreak(results []models.MatchResult) models.StreakRecord {
	counts := make(map[string]int)
	for player, seq := range byPlayerChronological(results) {
		counts[player] = len(seq)
	}
	return bestAcrossPlayers(counts)
}

// MostActivePlayer is LongestGameStreak with the full tie list attached.
func MostActivePlayer(results []models.MatchResult) models.MostActive {
	counts := make(map[string]int)
	for player, seq := range byPlayerChronological(results) {
		counts[player] = len(seq)
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return models.MostActive{Name: "N/A", TiedPlayers: []string{}}
	}

	tied := make([]string, 0, 1)
	for player, c := range counts {
		if c == max {
			tied = append(tied, player)
		}
	}
	sort.Strings(tied)

	return models.MostActive{Name: tied[0], Games: max, TiedPlayers: tied}
}

// WinRates computes per-player games played, wins and win percentage,
// ordered by win rate descending with name ascending as the tie-break.
func WinRates(results []models.MatchResult) []models.PlayerWinRate {
	rates := make([]models.PlayerWinRate, 0)
	for player, seq := range byPlayerChronological(results) {
		wins := 0
		for _, r := range seq {
			if r.Points == winPoints {
				wins++
			}
		}
		rates = append(rates, models.PlayerWinRate{
			Name:        player,
			GamesPlayed: len(seq),
			Wins:        wins,
			WinRate:     roundToTenth(100 * float64(wins) / float64(len(seq))),
		})
	}

	sort.Slice(rates, func(i, j int) bool {
		if rates[i].WinRate != rates[j].WinRate {
			return rates[i].WinRate > rates[j].WinRate
		}
		return rates[i].Name < rates[j].Name
	})
	return rates
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
