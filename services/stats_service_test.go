package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdarcy45-oss/Teams/engine"
	"github.com/markdarcy45-oss/Teams/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statsDay(n int) time.Time {
	return time.Date(2026, time.March, n, 0, 0, 0, 0, time.UTC)
}

func TestComputeStatisticsDegradation(t *testing.T) {
	boom := errors.New("connection refused")
	resultRepo := &fakeResultRepo{
		listCompletedByGameFn: func(ctx context.Context, gameID int) ([]models.MatchResult, error) {
			return nil, boom
		},
		recentMatchTotalsFn: func(ctx context.Context, gameID, limit int) ([]models.MatchTotal, error) {
			return nil, boom
		},
	}
	lockedRepo := &fakeLockedTeamRepo{
		listTeamGameRecordsFn: func(ctx context.Context, gameID int) ([]engine.TeamGameRecord, error) {
			return nil, boom
		},
	}

	svc := NewStatsService(resultRepo, lockedRepo, discardLogger())
	report, err := svc.ComputeStatistics(context.Background(), 7)
	require.NoError(t, err)

	// Every section degrades to its sentinel instead of failing the report.
	assert.Equal(t, 0, report.TotalMatches)
	assert.Equal(t, 0, report.ActivePlayers)
	assert.Equal(t, "N/A", report.MostActivePlayer.Name)
	assert.Equal(t, "N/A", report.LongestWinStreak.Player)
	assert.Equal(t, 0, report.LongestWinStreak.Streak)
	assert.Equal(t, "N/A", report.LongestLosingStreak.Player)
	assert.Equal(t, "N/A", report.LongestGameStreak.Player)
	assert.Empty(t, report.WinRates)
	assert.Empty(t, report.RecentMatches)
	assert.Empty(t, report.BestPairings)
	assert.Empty(t, report.FunFacts)
}

func TestComputeStatisticsReport(t *testing.T) {
	results := []models.MatchResult{
		{PlayerID: 1, PlayerName: "Ana", PlayerActive: true, MatchDate: statsDay(1), Points: 3},
		{PlayerID: 1, PlayerName: "Ana", PlayerActive: true, MatchDate: statsDay(2), Points: 3},
		{PlayerID: 2, PlayerName: "Ben", PlayerActive: true, MatchDate: statsDay(1), Points: 0},
		{PlayerID: 2, PlayerName: "Ben", PlayerActive: true, MatchDate: statsDay(2), Points: 0},
	}
	resultRepo := &fakeResultRepo{
		listCompletedByGameFn: func(ctx context.Context, gameID int) ([]models.MatchResult, error) {
			return results, nil
		},
		recentMatchTotalsFn: func(ctx context.Context, gameID, limit int) ([]models.MatchTotal, error) {
			assert.Equal(t, 5, limit)
			return []models.MatchTotal{{MatchDate: statsDay(2), TotalPoints: 3}}, nil
		},
	}
	lockedRepo := &fakeLockedTeamRepo{
		listTeamGameRecordsFn: func(ctx context.Context, gameID int) ([]engine.TeamGameRecord, error) {
			return nil, nil
		},
	}

	svc := NewStatsService(resultRepo, lockedRepo, discardLogger())
	report, err := svc.ComputeStatistics(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalMatches)
	assert.Equal(t, 2, report.ActivePlayers)

	assert.Equal(t, 2, report.MostActivePlayer.Games)
	assert.ElementsMatch(t, []string{"Ana", "Ben"}, report.MostActivePlayer.TiedPlayers)

	assert.Equal(t, models.StreakRecord{Player: "Ana", Streak: 2}, report.LongestWinStreak)
	assert.Equal(t, models.StreakRecord{Player: "Ben", Streak: 2}, report.LongestLosingStreak)

	require.Len(t, report.WinRates, 2)
	assert.Equal(t, "Ana", report.WinRates[0].Name)
	assert.Equal(t, 100.0, report.WinRates[0].WinRate)

	require.Len(t, report.RecentMatches, 1)

	// Top performer plus the iron-player tie.
	require.Len(t, report.FunFacts, 2)
	assert.Equal(t, "Top Performer", report.FunFacts[0].Title)
	assert.Contains(t, report.FunFacts[0].Description, "Ana")
	assert.Equal(t, "Iron Players", report.FunFacts[1].Title)
	assert.Contains(t, report.FunFacts[1].Description, "&")
}

func TestComputeStatisticsRetiredPlayers(t *testing.T) {
	// Cal left the roster with a perfect record: retired players keep their
	// streaks and activity counts but drop out of the win-rate table.
	results := []models.MatchResult{
		{PlayerID: 1, PlayerName: "Ana", PlayerActive: true, MatchDate: statsDay(1), Points: 3},
		{PlayerID: 1, PlayerName: "Ana", PlayerActive: true, MatchDate: statsDay(2), Points: 0},
		{PlayerID: 3, PlayerName: "Cal", PlayerActive: false, MatchDate: statsDay(1), Points: 3},
		{PlayerID: 3, PlayerName: "Cal", PlayerActive: false, MatchDate: statsDay(2), Points: 3},
		{PlayerID: 3, PlayerName: "Cal", PlayerActive: false, MatchDate: statsDay(3), Points: 3},
	}
	resultRepo := &fakeResultRepo{
		listCompletedByGameFn: func(ctx context.Context, gameID int) ([]models.MatchResult, error) {
			return results, nil
		},
		recentMatchTotalsFn: func(ctx context.Context, gameID, limit int) ([]models.MatchTotal, error) {
			return nil, nil
		},
	}
	lockedRepo := &fakeLockedTeamRepo{
		listTeamGameRecordsFn: func(ctx context.Context, gameID int) ([]engine.TeamGameRecord, error) {
			return nil, nil
		},
	}

	svc := NewStatsService(resultRepo, lockedRepo, discardLogger())
	report, err := svc.ComputeStatistics(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, report.WinRates, 1)
	assert.Equal(t, "Ana", report.WinRates[0].Name)

	assert.Equal(t, "Cal", report.MostActivePlayer.Name)
	assert.Equal(t, models.StreakRecord{Player: "Cal", Streak: 3}, report.LongestWinStreak)

	require.NotEmpty(t, report.FunFacts)
	assert.Equal(t, "Top Performer", report.FunFacts[0].Title)
	assert.Contains(t, report.FunFacts[0].Description, "Ana")
}
