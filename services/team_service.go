package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/markdarcy45-oss/Teams/engine"
	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
)

// Event is the payload broadcast to a game's live subscribers.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventTeamsLocked      = "TEAMS_LOCKED"
	EventTeamsUnlocked    = "TEAMS_UNLOCKED"
	EventResultsSubmitted = "RESULTS_SUBMITTED"
)

func GameRoom(gameID int) string {
	return fmt.Sprintf("game_%d", gameID)
}

type TeamService interface {
	BalanceTeams(ctx context.Context, gameID int, playerNames []string) (*models.BalanceResult, error)
	LockTeams(ctx context.Context, input LockTeamsInput) error
	UnlockTeams(ctx context.Context, gameID int, dateStr string) error
	SwapLockedPlayers(ctx context.Context, input SwapPlayersInput) error
	GetLockedTeams(ctx context.Context, gameID int, dateStr string) (map[string][]models.LockedTeamAssignment, error)
}

type LockTeamsInput struct {
	GameID   int      `json:"-"`
	Date     string   `json:"date"`
	Team1    []string `json:"team1"`
	Team2    []string `json:"team2"`
	LockedBy int      `json:"-"`
}

// SwapAssignment carries one side of a manual swap: the player and the team
// they should end up on.
type SwapAssignment struct {
	PlayerID int    `json:"id"`
	Team     string `json:"team"`
}

type SwapPlayersInput struct {
	GameID int            `json:"-"`
	Date   string         `json:"date"`
	P1     SwapAssignment `json:"p1"`
	P2     SwapAssignment `json:"p2"`
}

type teamService struct {
	playerRepo repositories.PlayerRepository
	lockedRepo repositories.LockedTeamRepository
	balancer   engine.TeamBalancer
	hub        Broadcaster
}

func NewTeamService(
	playerRepo repositories.PlayerRepository,
	lockedRepo repositories.LockedTeamRepository,
	balancer engine.TeamBalancer,
	hub Broadcaster,
) TeamService {
	return &teamService{
		playerRepo: playerRepo,
		lockedRepo: lockedRepo,
		balancer:   balancer,
		hub:        hub,
	}
}

// BalanceTeams fetches the requested players' current ranks and hands the
// pool to the balancing strategy. Names that are unknown or inactive are
// silently dropped; an entirely invalid selection is an error.
func (s *teamService) BalanceTeams(ctx context.Context, gameID int, playerNames []string) (*models.BalanceResult, error) {
	if len(playerNames) == 0 {
		return nil, ErrNoPlayersSelected
	}

	pool, err := s.playerRepo.ListActiveRankedByNames(ctx, gameID, playerNames)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player pool: %w", err)
	}

	result, err := s.balancer.Balance(pool)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyPool) {
			return nil, ErrNoValidPlayers
		}
		return nil, fmt.Errorf("%s balancer failed: %w", s.balancer.GetName(), err)
	}
	return result, nil
}

// LockTeams freezes a balancing result for a date, fully replacing any
// previous assignments for that date.
func (s *teamService) LockTeams(ctx context.Context, input LockTeamsInput) error {
	date, err := parseMatchDate(input.Date)
	if err != nil {
		return err
	}

	var assignments []models.LockedTeamAssignment
	appendTeam := func(names []string, teamName string) error {
		for slot, name := range names {
			player, err := s.playerRepo.GetByName(ctx, input.GameID, name)
			if err != nil {
				if errors.Is(err, repositories.ErrPlayerNotFound) {
					// The roster may have changed since balancing; skip
					// unknown names rather than failing the whole lock.
					continue
				}
				return fmt.Errorf("failed to resolve player %q: %w", name, err)
			}
			assignments = append(assignments, models.LockedTeamAssignment{
				PlayerID: player.ID,
				TeamName: teamName,
				Slot:     slot,
				LockedBy: input.LockedBy,
			})
		}
		return nil
	}

	if err := appendTeam(input.Team1, models.TeamOrange); err != nil {
		return err
	}
	if err := appendTeam(input.Team2, models.TeamYellow); err != nil {
		return err
	}

	if err := s.lockedRepo.Replace(ctx, date, input.GameID, assignments); err != nil {
		return fmt.Errorf("failed to lock teams for %s: %w", input.Date, err)
	}

	s.broadcast(input.GameID, EventTeamsLocked, map[string]string{"date": input.Date})
	return nil
}

func (s *teamService) UnlockTeams(ctx context.Context, gameID int, dateStr string) error {
	date, err := parseMatchDate(dateStr)
	if err != nil {
		return err
	}

	if err := s.lockedRepo.DeleteByDate(ctx, date, gameID); err != nil {
		return fmt.Errorf("failed to unlock teams for %s: %w", dateStr, err)
	}

	s.broadcast(gameID, EventTeamsUnlocked, map[string]string{"date": dateStr})
	return nil
}

func (s *teamService) SwapLockedPlayers(ctx context.Context, input SwapPlayersInput) error {
	date, err := parseMatchDate(input.Date)
	if err != nil {
		return err
	}

	for _, swap := range []SwapAssignment{input.P1, input.P2} {
		if err := s.lockedRepo.UpdateTeamForPlayer(ctx, date, swap.PlayerID, swap.Team); err != nil {
			if errors.Is(err, repositories.ErrAssignmentNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to move player %d: %w", swap.PlayerID, err)
		}
	}

	s.broadcast(input.GameID, EventTeamsLocked, map[string]string{"date": input.Date})
	return nil
}

// GetLockedTeams returns the assignments for a date grouped by team name.
// A date with no locked teams yields empty groups, not an error.
func (s *teamService) GetLockedTeams(ctx context.Context, gameID int, dateStr string) (map[string][]models.LockedTeamAssignment, error) {
	date, err := parseMatchDate(dateStr)
	if err != nil {
		return nil, err
	}

	assignments, err := s.lockedRepo.GetByDate(ctx, gameID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load locked teams for %s: %w", dateStr, err)
	}

	teams := map[string][]models.LockedTeamAssignment{
		models.TeamOrange: {},
		models.TeamYellow: {},
	}
	for _, a := range assignments {
		teams[a.TeamName] = append(teams[a.TeamName], a)
	}
	return teams, nil
}

func (s *teamService) broadcast(gameID int, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(GameRoom(gameID), Event{Type: eventType, Payload: payload})
}
