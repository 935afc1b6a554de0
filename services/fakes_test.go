package services

import (
	"context"
	"time"

	"github.com/markdarcy45-oss/Teams/engine"
	"github.com/markdarcy45-oss/Teams/models"
	"github.com/markdarcy45-oss/Teams/repositories"
)

// Function-field fakes let each test stub only the calls it expects.

type fakePlayerRepo struct {
	listActiveRankedByNamesFn func(ctx context.Context, gameID int, names []string) ([]models.RankedPlayer, error)
	getByNameFn               func(ctx context.Context, gameID int, name string) (*models.Player, error)
}

func (f *fakePlayerRepo) DeactivateAll(ctx context.Context, exec repositories.SQLExecutor, gameID int) error {
	return nil
}

func (f *fakePlayerRepo) UpsertActive(ctx context.Context, exec repositories.SQLExecutor, gameID int, name string) error {
	return nil
}

func (f *fakePlayerRepo) GetByName(ctx context.Context, gameID int, name string) (*models.Player, error) {
	return f.getByNameFn(ctx, gameID, name)
}

func (f *fakePlayerRepo) ListActiveRanked(ctx context.Context, gameID int) ([]models.RankedPlayer, error) {
	return nil, nil
}

func (f *fakePlayerRepo) ListActiveRankedByNames(ctx context.Context, gameID int, names []string) ([]models.RankedPlayer, error) {
	return f.listActiveRankedByNamesFn(ctx, gameID, names)
}

type fakeLockedTeamRepo struct {
	replaceFn             func(ctx context.Context, date time.Time, gameID int, assignments []models.LockedTeamAssignment) error
	deleteByDateFn        func(ctx context.Context, date time.Time, gameID int) error
	getByDateFn           func(ctx context.Context, gameID int, date time.Time) ([]models.LockedTeamAssignment, error)
	updateTeamForPlayerFn func(ctx context.Context, date time.Time, playerID int, teamName string) error
	listTeamGameRecordsFn func(ctx context.Context, gameID int) ([]engine.TeamGameRecord, error)
}

func (f *fakeLockedTeamRepo) Replace(ctx context.Context, date time.Time, gameID int, assignments []models.LockedTeamAssignment) error {
	return f.replaceFn(ctx, date, gameID, assignments)
}

func (f *fakeLockedTeamRepo) DeleteByDate(ctx context.Context, date time.Time, gameID int) error {
	return f.deleteByDateFn(ctx, date, gameID)
}

func (f *fakeLockedTeamRepo) GetByDate(ctx context.Context, gameID int, date time.Time) ([]models.LockedTeamAssignment, error) {
	return f.getByDateFn(ctx, gameID, date)
}

func (f *fakeLockedTeamRepo) UpdateTeamForPlayer(ctx context.Context, date time.Time, playerID int, teamName string) error {
	return f.updateTeamForPlayerFn(ctx, date, playerID, teamName)
}

func (f *fakeLockedTeamRepo) ListTeamGameRecords(ctx context.Context, gameID int) ([]engine.TeamGameRecord, error) {
	return f.listTeamGameRecordsFn(ctx, gameID)
}

type fakeResultRepo struct {
	listCompletedByGameFn func(ctx context.Context, gameID int) ([]models.MatchResult, error)
	recentMatchTotalsFn   func(ctx context.Context, gameID, limit int) ([]models.MatchTotal, error)
}

func (f *fakeResultRepo) Upsert(ctx context.Context, exec repositories.SQLExecutor, result *models.MatchResult) error {
	return nil
}

func (f *fakeResultRepo) ListCompletedByGame(ctx context.Context, gameID int) ([]models.MatchResult, error) {
	return f.listCompletedByGameFn(ctx, gameID)
}

func (f *fakeResultRepo) RecentMatchTotals(ctx context.Context, gameID, limit int) ([]models.MatchTotal, error) {
	return f.recentMatchTotalsFn(ctx, gameID, limit)
}

func (f *fakeResultRepo) GetPlayerGameID(ctx context.Context, playerID int) (int, error) {
	return 0, nil
}

type fakeBroadcaster struct {
	rooms    []string
	messages []interface{}
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.rooms = append(f.rooms, roomID)
	f.messages = append(f.messages, message)
}
