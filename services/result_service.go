package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
)

// Point budgets per league size: 1 point per loser plus a bonus pool for
// winners, so a valid sheet totals one of exactly two values. Other sizes
// are not constrained.
var pointBudgets = map[int][]int{
	10: {10, 15},
	12: {12, 18},
}

type ResultService interface {
	SubmitResults(ctx context.Context, input SubmitResultsInput) error
}

type SubmitResultsInput struct {
	GameID      int                   `json:"-"`
	Date        string                `json:"date"`
	Results     []models.PlayerResult `json:"results"`
	SubmittedBy int                   `json:"-"`
}

type resultService struct {
	db         *sql.DB
	resultRepo repositories.ResultRepository
	hub        Broadcaster
}

func NewResultService(db *sql.DB, resultRepo repositories.ResultRepository, hub Broadcaster) ResultService {
	return &resultService{
		db:         db,
		resultRepo: resultRepo,
		hub:        hub,
	}
}

// ValidatePointTotal enforces the league-size point budget over a whole
// submission. It is exported so the rule itself stays testable apart from
// the persistence path.
func ValidatePointTotal(results []models.PlayerResult) error {
	expected, constrained := pointBudgets[len(results)]
	if !constrained {
		return nil
	}

	total := 0
	for _, r := range results {
		total += r.Points
	}
	for _, allowed := range expected {
		if total == allowed {
			return nil
		}
	}
	return &PointTotalError{Players: len(results), Total: total, Expected: expected}
}

// SubmitResults validates the whole sheet first and then upserts every
// (player, date) row in a single transaction, so a rejected submission
// writes nothing.
func (s *resultService) SubmitResults(ctx context.Context, input SubmitResultsInput) error {
	date, err := parseMatchDate(input.Date)
	if err != nil {
		return err
	}
	if len(input.Results) == 0 {
		return ErrMissingFields
	}

	if err := ValidatePointTotal(input.Results); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range input.Results {
		gameID, err := s.resultRepo.GetPlayerGameID(ctx, r.PlayerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to resolve player %d: %w", r.PlayerID, err)
		}

		result := &models.MatchResult{
			MatchDate:   date,
			GameID:      gameID,
			PlayerID:    r.PlayerID,
			Points:      r.Points,
			SubmittedBy: input.SubmittedBy,
		}
		if err := s.resultRepo.Upsert(ctx, tx, result); err != nil {
			return fmt.Errorf("failed to record result for player %d: %w", r.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(GameRoom(input.GameID), Event{
			Type:    EventResultsSubmitted,
			Payload: map[string]string{"date": input.Date},
		})
	}
	return nil
}
