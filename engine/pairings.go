package engine

import (
	"sort"
	"time"

	"github.com/markdarcy45-oss/Teams/models"
)

const (
	// Pairs need a minimum shared history before their win rate means anything.
	DefaultMinGamesTogether = 3
	DefaultPairingLimit     = 10

	pairingDateLayout = "2006-01-02"
)

// TeamGameRecord is one locked player's outcome for one match date: the
// team they were locked onto joined with their recorded points. Players
// without a result for the date are excluded before this point.
type TeamGameRecord struct {
	Date   time.Time
	Team   string
	Player string
	Points int
}

// dateTeam keys on the calendar date as a string so records carrying the
// same date in different time representations still aggregate together.
type dateTeam struct {
	date string
	team string
}

type pairKey struct {
	p1, p2 string
}

// TopPairings aggregates, for every unordered pair of players locked onto
// the same team on the same date, how many matches they played together and
// how many of those their team won. A team wins a date when its point total
// strictly exceeds the other team's; equal totals yield no winner.
//
// Pairs with fewer than minGames shared matches are dropped. The rest are
// ordered by win rate descending, wins together descending, then by the
// canonical (player1, player2) names, truncated to limit.
func TopPairings(records []TeamGameRecord, minGames, limit int) []models.Pairing {
	if minGames <= 0 {
		minGames = DefaultMinGamesTogether
	}
	if limit <= 0 {
		limit = DefaultPairingLimit
	}

	totals := make(map[dateTeam]int)
	rosters := make(map[dateTeam][]string)
	for _, rec := range records {
		key := dateTeam{date: rec.Date.Format(pairingDateLayout), team: rec.Team}
		totals[key] += rec.Points
		rosters[key] = append(rosters[key], rec.Player)
	}

	// A date's winning team, if any, by strict total comparison. A team
	// with no opponent recorded still needs a positive total to count as
	// a win.
	winners := make(map[string]string)
	for key, total := range totals {
		best := 0
		for other, otherTotal := range totals {
			if other.date == key.date && other.team != key.team && otherTotal > best {
				best = otherTotal
			}
		}
		if total > best {
			winners[key.date] = key.team
		}
	}

	games := make(map[pairKey]int)
	wins := make(map[pairKey]int)
	for key, roster := range rosters {
		won := winners[key.date] == key.team
		for i := 0; i < len(roster); i++ {
			for j := i + 1; j < len(roster); j++ {
				pk := canonicalPair(roster[i], roster[j])
				games[pk]++
				if won {
					wins[pk]++
				}
			}
		}
	}

	pairings := make([]models.Pairing, 0)
	for pk, together := range games {
		if together < minGames {
			continue
		}
		pairings = append(pairings, models.Pairing{
			Player1:       pk.p1,
			Player2:       pk.p2,
			GamesTogether: together,
			WinsTogether:  wins[pk],
			WinRate:       roundToTenth(100 * float64(wins[pk]) / float64(together)),
		})
	}

	sort.Slice(pairings, func(i, j int) bool {
		a, b := pairings[i], pairings[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.WinsTogether != b.WinsTogether {
			return a.WinsTogether > b.WinsTogether
		}
		if a.Player1 != b.Player1 {
			return a.Player1 < b.Player1
		}
		return a.Player2 < b.Player2
	})

	if len(pairings) > limit {
		pairings = pairings[:limit]
	}
	return pairings
}

// canonicalPair orders an unordered pair so (A,B) and (B,A) aggregate into
// one row with player1 lexicographically smaller.
func canonicalPair(a, b string) pairKey {
	if a <= b {
		return pairKey{p1: a, p2: b}
	}
	return pairKey{p1: b, p2: a}
}
