package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/markdarcy45-oss/Teams/engine"
	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
)

const (
	recentMatchesLimit = 5
	noPlayerSentinel   = "N/A"
)

type StatsService interface {
	ComputeStatistics(ctx context.Context, gameID int) (*models.StatsReport, error)
}

type statsService struct {
	resultRepo repositories.ResultRepository
	lockedRepo repositories.LockedTeamRepository
	logger     *slog.Logger
	group      singleflight.Group
}

func NewStatsService(
	resultRepo repositories.ResultRepository,
	lockedRepo repositories.LockedTeamRepository,
	logger *slog.Logger,
) StatsService {
	return &statsService{
		resultRepo: resultRepo,
		lockedRepo: lockedRepo,
		logger:     logger,
	}
}

// ComputeStatistics assembles the full report for a game. Concurrent
// requests for the same game share one computation. Every section is
// isolated: a section that cannot be computed is logged and left at its
// sentinel value instead of failing the report.
func (s *statsService) ComputeStatistics(ctx context.Context, gameID int) (*models.StatsReport, error) {
	v, err, _ := s.group.Do(fmt.Sprintf("stats_%d", gameID), func() (interface{}, error) {
		return s.compute(ctx, gameID), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.StatsReport), nil
}

func (s *statsService) compute(ctx context.Context, gameID int) *models.StatsReport {
	report := &models.StatsReport{
		MostActivePlayer:    models.MostActive{Name: noPlayerSentinel, TiedPlayers: []string{}},
		WinRates:            []models.PlayerWinRate{},
		RecentMatches:       []models.MatchTotal{},
		LongestGameStreak:   models.StreakRecord{Player: noPlayerSentinel},
		LongestWinStreak:    models.StreakRecord{Player: noPlayerSentinel},
		LongestLosingStreak: models.StreakRecord{Player: noPlayerSentinel},
		BestPairings:        []models.Pairing{},
	}

	results, err := s.resultRepo.ListCompletedByGame(ctx, gameID)
	if err != nil {
		s.logger.Error("stats: failed to load results",
			slog.Int("game_id", gameID), slog.Any("error", err))
	} else {
		s.fillFromResults(report, results)
	}

	recent, err := s.resultRepo.RecentMatchTotals(ctx, gameID, recentMatchesLimit)
	if err != nil {
		s.logger.Error("stats: failed to load recent matches",
			slog.Int("game_id", gameID), slog.Any("error", err))
	} else {
		report.RecentMatches = recent
	}

	records, err := s.lockedRepo.ListTeamGameRecords(ctx, gameID)
	if err != nil {
		s.logger.Error("stats: failed to load pairing records",
			slog.Int("game_id", gameID), slog.Any("error", err))
	} else {
		report.BestPairings = engine.TopPairings(records,
			engine.DefaultMinGamesTogether, engine.DefaultPairingLimit)
	}

	report.FunFacts = buildFunFacts(report)
	return report
}

func (s *statsService) fillFromResults(report *models.StatsReport, results []models.MatchResult) {
	dates := make(map[string]struct{})
	players := make(map[int]struct{})
	for _, r := range results {
		dates[r.MatchDate.Format(matchDateLayout)] = struct{}{}
		players[r.PlayerID] = struct{}{}
	}
	report.TotalMatches = len(dates)
	report.ActivePlayers = len(players)

	// Win rates cover active players only; streaks and activity counts keep
	// the full history including retired players.
	activeResults := make([]models.MatchResult, 0, len(results))
	for _, r := range results {
		if r.PlayerActive {
			activeResults = append(activeResults, r)
		}
	}

	report.MostActivePlayer = engine.MostActivePlayer(results)
	report.WinRates = engine.WinRates(activeResults)
	report.LongestGameStreak = withSentinel(engine.LongestGameStreak(results))
	report.LongestWinStreak = withSentinel(engine.LongestWinStreak(results))
	report.LongestLosingStreak = withSentinel(engine.LongestLossStreak(results))
}

func withSentinel(rec models.StreakRecord) models.StreakRecord {
	if rec.Streak == 0 {
		return models.StreakRecord{Player: noPlayerSentinel}
	}
	return rec
}

func buildFunFacts(report *models.StatsReport) []models.FunFact {
	var facts []models.FunFact

	if len(report.WinRates) > 0 {
		top := report.WinRates[0]
		facts = append(facts, models.FunFact{
			Icon:        "🔥",
			Title:       "Top Performer",
			Description: fmt.Sprintf("%s leads with %.1f%% win rate!", top.Name, top.WinRate),
		})
	}

	active := report.MostActivePlayer
	if active.Games > 0 {
		if len(active.TiedPlayers) > 1 {
			facts = append(facts, models.FunFact{
				Icon:        "🛡️",
				Title:       "Iron Players",
				Description: fmt.Sprintf("%s have each played %d games.", strings.Join(active.TiedPlayers, " & "), active.Games),
			})
		} else {
			facts = append(facts, models.FunFact{
				Icon:        "🛡️",
				Title:       "Iron Player",
				Description: fmt.Sprintf("%s has played %d games.", active.Name, active.Games),
			})
		}
	}

	return facts
}
