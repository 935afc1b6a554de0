package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
	"github.com/markdarcy45-oss/Teams/storage"
)

type GameService interface {
	ListGamesForUser(ctx context.Context, userID int) ([]*models.Game, error)
	JoinGame(ctx context.Context, userID int, inviteCode string) (*models.Game, error)
	ListMembers(ctx context.Context, gameID int) ([]*models.GameMember, error)
	UpdateMemberRole(ctx context.Context, currentUserID, gameID int, targetUsername string, role models.MemberRole) error
	UploadLogo(ctx context.Context, gameID int, contentType string, reader io.Reader) (*models.Game, error)
}

type gameService struct {
	gameRepo repositories.GameRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader // nil when object storage is not configured
}

func NewGameService(gameRepo repositories.GameRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) GameService {
	return &gameService{
		gameRepo: gameRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *gameService) ListGamesForUser(ctx context.Context, userID int) ([]*models.Game, error) {
	games, err := s.gameRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for user %d: %w", userID, err)
	}
	for _, game := range games {
		s.attachLogoURL(game)
	}
	return games, nil
}

// JoinGame links the user to the game with the given code. Joining a game
// the user already belongs to is a no-op.
func (s *gameService) JoinGame(ctx context.Context, userID int, inviteCode string) (*models.Game, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, ErrInvalidInviteCode
	}

	game, err := s.gameRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if err := s.gameRepo.AddMember(ctx, nil, userID, game.ID, models.RoleReadOnly); err != nil {
		return nil, fmt.Errorf("failed to join game %d: %w", game.ID, err)
	}

	s.attachLogoURL(game)
	return game, nil
}

func (s *gameService) ListMembers(ctx context.Context, gameID int) ([]*models.GameMember, error) {
	members, err := s.gameRepo.ListMembers(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of game %d: %w", gameID, err)
	}
	return members, nil
}

func (s *gameService) UpdateMemberRole(ctx context.Context, currentUserID, gameID int, targetUsername string, role models.MemberRole) error {
	if role != models.RoleAdmin && role != models.RoleReadOnly {
		return ErrInvalidMemberRole
	}

	currentRole, err := s.gameRepo.GetMemberRole(ctx, currentUserID, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return ErrGameAdminRequired
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if currentRole != models.RoleAdmin {
		return ErrGameAdminRequired
	}

	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user %q: %w", targetUsername, err)
	}

	if target.ID == currentUserID {
		return ErrCannotChangeOwnRole
	}

	if err := s.gameRepo.UpdateMemberRole(ctx, target.ID, gameID, role); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func (s *gameService) UploadLogo(ctx context.Context, gameID int, contentType string, reader io.Reader) (*models.Game, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", gameID, err)
	}

	key := fmt.Sprintf("games/%d/logo", gameID)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for game %d: %w", gameID, err)
	}

	if err := s.gameRepo.SetLogoKey(ctx, gameID, result.Key); err != nil {
		return nil, fmt.Errorf("failed to record logo key: %w", err)
	}

	game.LogoKey = &result.Key
	s.attachLogoURL(game)
	return game, nil
}

func (s *gameService) attachLogoURL(game *models.Game) {
	if s.uploader == nil || game.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*game.LogoKey)
	game.LogoURL = &url
}
