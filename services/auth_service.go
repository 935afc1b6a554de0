package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
	"github.com/markdarcy45-oss/Teams/utils"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
}

type RegisterInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	InviteCode string `json:"code"`
}

type authService struct {
	userRepo         repositories.UserRepository
	gameRepo         repositories.GameRepository
	masterInviteCode string
}

func NewAuthService(userRepo repositories.UserRepository, gameRepo repositories.GameRepository, masterInviteCode string) AuthService {
	return &authService{
		userRepo:         userRepo,
		gameRepo:         gameRepo,
		masterInviteCode: masterInviteCode,
	}
}

// Register creates an account against an invite code. The master code grants
// a global admin with no initial membership; any other code must belong to a
// game, which the new user joins as a Read-only member.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" || input.InviteCode == "" {
		return nil, ErrMissingFields
	}

	isGlobalAdmin := input.InviteCode == s.masterInviteCode

	var game *models.Game
	if !isGlobalAdmin {
		var err error
		game, err = s.gameRepo.GetByInviteCode(ctx, input.InviteCode)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return nil, ErrInvalidInviteCode
			}
			return nil, fmt.Errorf("failed to look up invite code: %w", err)
		}
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isGlobalAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if game != nil {
		if err := s.gameRepo.AddMember(ctx, nil, user.ID, game.ID, models.RoleReadOnly); err != nil {
			return nil, fmt.Errorf("failed to add user %d to game %d: %w", user.ID, game.ID, err)
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPasswordHash(strings.TrimSpace(creds.Password), user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}
