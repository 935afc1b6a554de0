package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/markdarcy45-oss/Teams/models"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrMemberNotFound = errors.New("game member not found")
)

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Game, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Game, error)
	SetLogoKey(ctx context.Context, gameID int, key string) error

	AddMember(ctx context.Context, exec SQLExecutor, userID, gameID int, role models.MemberRole) error
	GetMemberRole(ctx context.Context, userID, gameID int) (models.MemberRole, error)
	ListMembers(ctx context.Context, gameID int) ([]*models.GameMember, error)
	UpdateMemberRole(ctx context.Context, userID, gameID int, role models.MemberRole) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

// Create inserts a game. A nil exec falls back to the repository's own
// connection; callers pass a transaction when the insert must be atomic
// with other writes.
func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO game_names (name, owner_user_id, invite_code)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return exec.QueryRowContext(ctx, query,
		game.Name,
		game.OwnerUserID,
		game.InviteCode,
	).Scan(&game.ID, &game.CreatedAt)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *postgresGameRepository) GetByInviteCode(ctx context.Context, code string) (*models.Game, error) {
	return r.getBy(ctx, `WHERE invite_code = $1`, code)
}

func (r *postgresGameRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Game, error) {
	query := `SELECT id, name, owner_user_id, invite_code, logo_key, created_at FROM game_names ` + where

	game := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&game.ID,
		&game.Name,
		&game.OwnerUserID,
		&game.InviteCode,
		&game.LogoKey,
		&game.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (r *postgresGameRepository) ListByUser(ctx context.Context, userID int) ([]*models.Game, error) {
	query := `
		SELECT g.id, g.name, g.owner_user_id, g.invite_code, g.logo_key, g.created_at
		FROM game_names g
		JOIN game_members m ON g.id = m.game_id
		WHERE m.user_id = $1
		ORDER BY LOWER(g.name)`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		game := &models.Game{}
		if scanErr := rows.Scan(
			&game.ID,
			&game.Name,
			&game.OwnerUserID,
			&game.InviteCode,
			&game.LogoKey,
			&game.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) SetLogoKey(ctx context.Context, gameID int, key string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE game_names SET logo_key = $1 WHERE id = $2`, key, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) AddMember(ctx context.Context, exec SQLExecutor, userID, gameID int, role models.MemberRole) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO game_members (user_id, game_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, game_id) DO NOTHING`

	_, err := exec.ExecContext(ctx, query, userID, gameID, role)
	return err
}

func (r *postgresGameRepository) GetMemberRole(ctx context.Context, userID, gameID int) (models.MemberRole, error) {
	var role models.MemberRole
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM game_members WHERE user_id = $1 AND game_id = $2`,
		userID, gameID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMemberNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *postgresGameRepository) ListMembers(ctx context.Context, gameID int) ([]*models.GameMember, error) {
	query := `
		SELECT m.user_id, m.game_id, u.username, m.role
		FROM game_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.game_id = $1
		ORDER BY u.username ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.GameMember, 0)
	for rows.Next() {
		member := &models.GameMember{}
		if scanErr := rows.Scan(&member.UserID, &member.GameID, &member.Username, &member.Role); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *postgresGameRepository) UpdateMemberRole(ctx context.Context, userID, gameID int, role models.MemberRole) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE game_members SET role = $1 WHERE user_id = $2 AND game_id = $3`,
		role, userID, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}
