package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
	"github.com/markdarcy45-oss/Teams/utils"
)

const gameInviteCodeLength = 10

type RosterService interface {
	SyncRoster(ctx context.Context, input SyncRosterInput) (*models.Game, error)
	ListActivePlayers(ctx context.Context, gameID int) ([]models.RankedPlayer, error)
}

type SyncRosterInput struct {
	GameID        int      `json:"game_id"`
	GameName      string   `json:"game_name"`
	Players       []string `json:"players"`
	CurrentUserID int      `json:"-"`
}

type rosterService struct {
	db         *sql.DB
	gameRepo   repositories.GameRepository
	playerRepo repositories.PlayerRepository
}

func NewRosterService(db *sql.DB, gameRepo repositories.GameRepository, playerRepo repositories.PlayerRepository) RosterService {
	return &rosterService{
		db:         db,
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
	}
}

// SyncRoster replaces a game's active roster with the submitted name list:
// every player is deactivated, then listed names are inserted or
// reactivated. Deactivated players keep their history. With no game id the
// game itself is created first, with a fresh invite code and the caller
// linked as its Admin, all in one transaction.
func (s *rosterService) SyncRoster(ctx context.Context, input SyncRosterInput) (*models.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var game *models.Game
	if input.GameID == 0 {
		if strings.TrimSpace(input.GameName) == "" {
			return nil, ErrGameNameRequired
		}

		code, err := utils.GenerateInviteCode(gameInviteCodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}

		game = &models.Game{
			Name:        strings.TrimSpace(input.GameName),
			OwnerUserID: input.CurrentUserID,
			InviteCode:  code,
		}
		if err := s.gameRepo.Create(ctx, tx, game); err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}
		if err := s.gameRepo.AddMember(ctx, tx, input.CurrentUserID, game.ID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to link creator to game: %w", err)
		}
	} else {
		game, err = s.gameRepo.GetByID(ctx, input.GameID)
		if err != nil {
			return nil, ErrGameNotFound
		}
	}

	if err := s.playerRepo.DeactivateAll(ctx, tx, game.ID); err != nil {
		return nil, fmt.Errorf("failed to deactivate roster: %w", err)
	}
	for _, name := range input.Players {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := s.playerRepo.UpsertActive(ctx, tx, game.ID, name); err != nil {
			return nil, fmt.Errorf("failed to upsert player %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit roster sync: %w", err)
	}
	return game, nil
}

func (s *rosterService) ListActivePlayers(ctx context.Context, gameID int) ([]models.RankedPlayer, error) {
	players, err := s.playerRepo.ListActiveRanked(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for game %d: %w", gameID, err)
	}
	return players, nil
}
