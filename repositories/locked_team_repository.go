package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/markdarcy45-oss/Teams/engine"
	"github.com/markdarcy45-oss/Teams/models"
)

var ErrAssignmentNotFound = errors.New("locked team assignment not found")

type LockedTeamRepository interface {
	// Replace swaps out the full set of assignments for a date in one
	// transaction, so concurrent readers never observe the intermediate
	// empty state between delete and insert.
	Replace(ctx context.Context, date time.Time, gameID int, assignments []models.LockedTeamAssignment) error
	DeleteByDate(ctx context.Context, date time.Time, gameID int) error
	GetByDate(ctx context.Context, gameID int, date time.Time) ([]models.LockedTeamAssignment, error)
	UpdateTeamForPlayer(ctx context.Context, date time.Time, playerID int, teamName string) error
	ListTeamGameRecords(ctx context.Context, gameID int) ([]engine.TeamGameRecord, error)
}

type postgresLockedTeamRepository struct {
	db *sql.DB
}

func NewPostgresLockedTeamRepository(db *sql.DB) LockedTeamRepository {
	return &postgresLockedTeamRepository{db: db}
}

func (r *postgresLockedTeamRepository) Replace(ctx context.Context, date time.Time, gameID int, assignments []models.LockedTeamAssignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM locked_teams WHERE date = $1 AND game_id = $2`, date, gameID); err != nil {
		return fmt.Errorf("failed to clear locked teams for %s: %w", date.Format("2006-01-02"), err)
	}

	insert := `
		INSERT INTO locked_teams (date, game_id, player_id, team_name, slot, locked_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, insert,
			date, gameID, a.PlayerID, a.TeamName, a.Slot, a.LockedBy); err != nil {
			return fmt.Errorf("failed to lock player %d: %w", a.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresLockedTeamRepository) DeleteByDate(ctx context.Context, date time.Time, gameID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM locked_teams WHERE date = $1 AND game_id = $2`, date, gameID)
	return err
}

func (r *postgresLockedTeamRepository) GetByDate(ctx context.Context, gameID int, date time.Time) ([]models.LockedTeamAssignment, error) {
	query := `
		SELECT lt.id, lt.date, lt.game_id, lt.player_id, p.name, lt.team_name, lt.slot, lt.locked_by
		FROM locked_teams lt
		JOIN players p ON lt.player_id = p.id
		WHERE lt.game_id = $1 AND lt.date = $2
		ORDER BY lt.team_name ASC, p.name ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.LockedTeamAssignment, 0)
	for rows.Next() {
		var a models.LockedTeamAssignment
		if scanErr := rows.Scan(
			&a.ID,
			&a.MatchDate,
			&a.GameID,
			&a.PlayerID,
			&a.PlayerName,
			&a.TeamName,
			&a.Slot,
			&a.LockedBy,
		); scanErr != nil {
			return nil, scanErr
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *postgresLockedTeamRepository) UpdateTeamForPlayer(ctx context.Context, date time.Time, playerID int, teamName string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE locked_teams SET team_name = $1 WHERE date = $2 AND player_id = $3`,
		teamName, date, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAssignmentNotFound)
}

// ListTeamGameRecords joins locked assignments with each player's recorded
// points for the same date. Players without a result for a locked date are
// excluded; they simply do not contribute to pairing statistics.
func (r *postgresLockedTeamRepository) ListTeamGameRecords(ctx context.Context, gameID int) ([]engine.TeamGameRecord, error) {
	query := `
		SELECT lt.date, lt.team_name, p.name, r.points
		FROM locked_teams lt
		JOIN players p ON lt.player_id = p.id
		JOIN results r ON r.player_id = lt.player_id AND r.match_date = lt.date
		WHERE p.game_id = $1 AND r.points IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]engine.TeamGameRecord, 0)
	for rows.Next() {
		var rec engine.TeamGameRecord
		if scanErr := rows.Scan(&rec.Date, &rec.Team, &rec.Player, &rec.Points); scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
