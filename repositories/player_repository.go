package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/markdarcy45-oss/Teams/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	DeactivateAll(ctx context.Context, exec SQLExecutor, gameID int) error
	UpsertActive(ctx context.Context, exec SQLExecutor, gameID int, name string) error
	GetByName(ctx context.Context, gameID int, name string) (*models.Player, error)
	ListActiveRanked(ctx context.Context, gameID int) ([]models.RankedPlayer, error)
	ListActiveRankedByNames(ctx context.Context, gameID int, names []string) ([]models.RankedPlayer, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) DeactivateAll(ctx context.Context, exec SQLExecutor, gameID int) error {
	_, err := exec.ExecContext(ctx, `UPDATE players SET active = 0 WHERE game_id = $1`, gameID)
	return err
}

func (r *postgresPlayerRepository) UpsertActive(ctx context.Context, exec SQLExecutor, gameID int, name string) error {
	query := `
		INSERT INTO players (name, game_id, active)
		VALUES ($1, $2, 1)
		ON CONFLICT (name, game_id) DO UPDATE SET active = 1`

	_, err := exec.ExecContext(ctx, query, name, gameID)
	return err
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, gameID int, name string) (*models.Player, error) {
	query := `
		SELECT id, name, game_id, active, created_at
		FROM players
		WHERE game_id = $1 AND name = $2`

	player := &models.Player{}
	var active int
	err := r.db.QueryRowContext(ctx, query, gameID, name).Scan(
		&player.ID,
		&player.Name,
		&player.GameID,
		&active,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	player.Active = active == 1
	return player, nil
}

// rankedQuery computes each active player's rank as the sum of their
// recorded points; players with no results rank 0.
const rankedQuery = `
	SELECT p.name, COALESCE(SUM(r.points), 0) AS rank
	FROM players p
	LEFT JOIN results r ON r.player_id = p.id AND r.points IS NOT NULL
	WHERE p.game_id = $1 AND p.active = 1`

func (r *postgresPlayerRepository) ListActiveRanked(ctx context.Context, gameID int) ([]models.RankedPlayer, error) {
	query := rankedQuery + `
	GROUP BY p.id, p.name
	ORDER BY LOWER(p.name) ASC`

	return r.queryRanked(ctx, query, gameID)
}

func (r *postgresPlayerRepository) ListActiveRankedByNames(ctx context.Context, gameID int, names []string) ([]models.RankedPlayer, error) {
	query := rankedQuery + ` AND p.name = ANY($2)
	GROUP BY p.id, p.name
	ORDER BY LOWER(p.name) ASC`

	return r.queryRanked(ctx, query, gameID, pq.Array(names))
}

func (r *postgresPlayerRepository) queryRanked(ctx context.Context, query string, args ...interface{}) ([]models.RankedPlayer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.RankedPlayer, 0)
	for rows.Next() {
		var p models.RankedPlayer
		if scanErr := rows.Scan(&p.Name, &p.Rank); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
