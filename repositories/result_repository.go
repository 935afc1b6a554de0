package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/markdarcy45-oss/Teams/models"
)

type ResultRepository interface {
	// Upsert inserts or overwrites the point total for (player, date).
	// Re-submission for the same date always reflects the latest points.
	Upsert(ctx context.Context, exec SQLExecutor, result *models.MatchResult) error
	ListCompletedByGame(ctx context.Context, gameID int) ([]models.MatchResult, error)
	RecentMatchTotals(ctx context.Context, gameID, limit int) ([]models.MatchTotal, error)
	GetPlayerGameID(ctx context.Context, playerID int) (int, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) Upsert(ctx context.Context, exec SQLExecutor, result *models.MatchResult) error {
	query := `
		INSERT INTO results (match_date, game_id, player_id, points, submitted_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, match_date)
		DO UPDATE SET points = EXCLUDED.points, submitted_by = EXCLUDED.submitted_by`

	_, err := exec.ExecContext(ctx, query,
		result.MatchDate,
		result.GameID,
		result.PlayerID,
		result.Points,
		result.SubmittedBy,
	)
	return err
}

func (r *postgresResultRepository) ListCompletedByGame(ctx context.Context, gameID int) ([]models.MatchResult, error) {
	query := `
		SELECT r.id, r.game_id, r.player_id, p.name, p.active = 1, r.match_date, r.points, r.submitted_by
		FROM results r
		JOIN players p ON r.player_id = p.id
		WHERE r.game_id = $1 AND r.points IS NOT NULL
		ORDER BY r.player_id, r.match_date ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.MatchResult, 0)
	for rows.Next() {
		var res models.MatchResult
		if scanErr := rows.Scan(
			&res.ID,
			&res.GameID,
			&res.PlayerID,
			&res.PlayerName,
			&res.PlayerActive,
			&res.MatchDate,
			&res.Points,
			&res.SubmittedBy,
		); scanErr != nil {
			return nil, scanErr
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *postgresResultRepository) RecentMatchTotals(ctx context.Context, gameID, limit int) ([]models.MatchTotal, error) {
	query := `
		SELECT match_date, SUM(points) AS total_points
		FROM results
		WHERE game_id = $1 AND points IS NOT NULL
		GROUP BY match_date
		ORDER BY match_date DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, gameID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]models.MatchTotal, 0)
	for rows.Next() {
		var t models.MatchTotal
		if scanErr := rows.Scan(&t.MatchDate, &t.TotalPoints); scanErr != nil {
			return nil, scanErr
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *postgresResultRepository) GetPlayerGameID(ctx context.Context, playerID int) (int, error) {
	var gameID int
	err := r.db.QueryRowContext(ctx,
		`SELECT game_id FROM players WHERE id = $1`, playerID,
	).Scan(&gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPlayerNotFound
		}
		return 0, err
	}
	return gameID, nil
}
