package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdarcy45-oss/Teams/engine"
	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
)

func TestBalanceTeams(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty selection", func(t *testing.T) {
		svc := NewTeamService(&fakePlayerRepo{}, &fakeLockedTeamRepo{}, engine.NewSeededRandomSearchBalancer(1), nil)

		_, err := svc.BalanceTeams(ctx, 1, nil)
		assert.ErrorIs(t, err, ErrNoPlayersSelected)
	})

	t.Run("rejects selection with no known players", func(t *testing.T) {
		playerRepo := &fakePlayerRepo{
			listActiveRankedByNamesFn: func(ctx context.Context, gameID int, names []string) ([]models.RankedPlayer, error) {
				return nil, nil
			},
		}
		svc := NewTeamService(playerRepo, &fakeLockedTeamRepo{}, engine.NewSeededRandomSearchBalancer(1), nil)

		_, err := svc.BalanceTeams(ctx, 1, []string{"Ghost"})
		assert.ErrorIs(t, err, ErrNoValidPlayers)
	})

	t.Run("splits the selected pool", func(t *testing.T) {
		playerRepo := &fakePlayerRepo{
			listActiveRankedByNamesFn: func(ctx context.Context, gameID int, names []string) ([]models.RankedPlayer, error) {
				assert.Equal(t, 7, gameID)
				return []models.RankedPlayer{
					{Name: "Ana", Rank: 5},
					{Name: "Ben", Rank: 3},
					{Name: "Cal", Rank: 3},
					{Name: "Dee", Rank: 1},
				}, nil
			},
		}
		svc := NewTeamService(playerRepo, &fakeLockedTeamRepo{}, engine.NewSeededRandomSearchBalancer(1), nil)

		result, err := svc.BalanceTeams(ctx, 7, []string{"Ana", "Ben", "Cal", "Dee"})
		require.NoError(t, err)
		assert.Len(t, result.Team1, 2)
		assert.Len(t, result.Team2, 2)
		assert.Equal(t, 12, result.Total1+result.Total2)
	})
}

func TestLockTeams(t *testing.T) {
	ctx := context.Background()
	playersByName := map[string]int{"Ana": 11, "Ben": 12, "Cal": 13}

	playerRepo := &fakePlayerRepo{
		getByNameFn: func(ctx context.Context, gameID int, name string) (*models.Player, error) {
			id, ok := playersByName[name]
			if !ok {
				return nil, repositories.ErrPlayerNotFound
			}
			return &models.Player{ID: id, Name: name, GameID: gameID}, nil
		},
	}

	t.Run("assigns sides and broadcasts", func(t *testing.T) {
		var got []models.LockedTeamAssignment
		lockedRepo := &fakeLockedTeamRepo{
			replaceFn: func(ctx context.Context, date time.Time, gameID int, assignments []models.LockedTeamAssignment) error {
				got = assignments
				return nil
			},
		}
		hub := &fakeBroadcaster{}
		svc := NewTeamService(playerRepo, lockedRepo, engine.NewSeededRandomSearchBalancer(1), hub)

		err := svc.LockTeams(ctx, LockTeamsInput{
			GameID:   7,
			Date:     "2026-08-30",
			Team1:    []string{"Ana", "Ben"},
			Team2:    []string{"Cal"},
			LockedBy: 42,
		})
		require.NoError(t, err)

		require.Len(t, got, 3)
		assert.Equal(t, models.TeamOrange, got[0].TeamName)
		assert.Equal(t, models.TeamOrange, got[1].TeamName)
		assert.Equal(t, models.TeamYellow, got[2].TeamName)
		assert.Equal(t, 42, got[0].LockedBy)

		require.Len(t, hub.rooms, 1)
		assert.Equal(t, "game_7", hub.rooms[0])
		event := hub.messages[0].(Event)
		assert.Equal(t, EventTeamsLocked, event.Type)
	})

	t.Run("skips names no longer on the roster", func(t *testing.T) {
		var got []models.LockedTeamAssignment
		lockedRepo := &fakeLockedTeamRepo{
			replaceFn: func(ctx context.Context, date time.Time, gameID int, assignments []models.LockedTeamAssignment) error {
				got = assignments
				return nil
			},
		}
		svc := NewTeamService(playerRepo, lockedRepo, engine.NewSeededRandomSearchBalancer(1), nil)

		err := svc.LockTeams(ctx, LockTeamsInput{
			GameID: 7,
			Date:   "2026-08-30",
			Team1:  []string{"Ana", "Ghost"},
			Team2:  []string{"Ben"},
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc := NewTeamService(playerRepo, &fakeLockedTeamRepo{}, engine.NewSeededRandomSearchBalancer(1), nil)

		err := svc.LockTeams(ctx, LockTeamsInput{GameID: 7, Date: "today"})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestSwapLockedPlayers(t *testing.T) {
	ctx := context.Background()

	t.Run("missing assignment maps to player not found", func(t *testing.T) {
		lockedRepo := &fakeLockedTeamRepo{
			updateTeamForPlayerFn: func(ctx context.Context, date time.Time, playerID int, teamName string) error {
				return repositories.ErrAssignmentNotFound
			},
		}
		svc := NewTeamService(&fakePlayerRepo{}, lockedRepo, engine.NewSeededRandomSearchBalancer(1), nil)

		err := svc.SwapLockedPlayers(ctx, SwapPlayersInput{
			GameID: 7,
			Date:   "2026-08-30",
			P1:     SwapAssignment{PlayerID: 1, Team: models.TeamYellow},
			P2:     SwapAssignment{PlayerID: 2, Team: models.TeamOrange},
		})
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("moves both players and broadcasts", func(t *testing.T) {
		moved := map[int]string{}
		lockedRepo := &fakeLockedTeamRepo{
			updateTeamForPlayerFn: func(ctx context.Context, date time.Time, playerID int, teamName string) error {
				moved[playerID] = teamName
				return nil
			},
		}
		hub := &fakeBroadcaster{}
		svc := NewTeamService(&fakePlayerRepo{}, lockedRepo, engine.NewSeededRandomSearchBalancer(1), hub)

		err := svc.SwapLockedPlayers(ctx, SwapPlayersInput{
			GameID: 7,
			Date:   "2026-08-30",
			P1:     SwapAssignment{PlayerID: 1, Team: models.TeamYellow},
			P2:     SwapAssignment{PlayerID: 2, Team: models.TeamOrange},
		})
		require.NoError(t, err)
		assert.Equal(t, map[int]string{1: models.TeamYellow, 2: models.TeamOrange}, moved)
		assert.Equal(t, []string{"game_7"}, hub.rooms)
	})
}

func TestGetLockedTeams(t *testing.T) {
	ctx := context.Background()

	t.Run("groups assignments by team with both keys present", func(t *testing.T) {
		lockedRepo := &fakeLockedTeamRepo{
			getByDateFn: func(ctx context.Context, gameID int, date time.Time) ([]models.LockedTeamAssignment, error) {
				return []models.LockedTeamAssignment{
					{PlayerID: 1, PlayerName: "Ana", TeamName: models.TeamOrange},
					{PlayerID: 2, PlayerName: "Ben", TeamName: models.TeamOrange},
				}, nil
			},
		}
		svc := NewTeamService(&fakePlayerRepo{}, lockedRepo, engine.NewSeededRandomSearchBalancer(1), nil)

		teams, err := svc.GetLockedTeams(ctx, 7, "2026-08-30")
		require.NoError(t, err)
		assert.Len(t, teams[models.TeamOrange], 2)
		assert.Empty(t, teams[models.TeamYellow])
	})

	t.Run("unlocked date yields empty groups", func(t *testing.T) {
		lockedRepo := &fakeLockedTeamRepo{
			getByDateFn: func(ctx context.Context, gameID int, date time.Time) ([]models.LockedTeamAssignment, error) {
				return nil, nil
			},
		}
		svc := NewTeamService(&fakePlayerRepo{}, lockedRepo, engine.NewSeededRandomSearchBalancer(1), nil)

		teams, err := svc.GetLockedTeams(ctx, 7, "2026-08-30")
		require.NoError(t, err)
		assert.Empty(t, teams[models.TeamOrange])
		assert.Empty(t, teams[models.TeamYellow])
	})
}

func TestUnlockTeams(t *testing.T) {
	hub := &fakeBroadcaster{}
	lockedRepo := &fakeLockedTeamRepo{
		deleteByDateFn: func(ctx context.Context, date time.Time, gameID int) error {
			assert.Equal(t, 7, gameID)
			return nil
		},
	}
	svc := NewTeamService(&fakePlayerRepo{}, lockedRepo, engine.NewSeededRandomSearchBalancer(1), hub)

	err := svc.UnlockTeams(context.Background(), 7, "2026-08-30")
	require.NoError(t, err)

	require.Len(t, hub.messages, 1)
	assert.Equal(t, EventTeamsUnlocked, hub.messages[0].(Event).Type)
}
