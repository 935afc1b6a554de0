package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdarcy45-oss/Teams/models"
)

func resultsWithTotal(players, total int) []models.PlayerResult {
	results := make([]models.PlayerResult, players)
	for i := range results {
		results[i] = models.PlayerResult{PlayerID: i + 1}
	}
	results[0].Points = total
	return results
}

func TestValidatePointTotal(t *testing.T) {
	t.Run("ten players accept both budgets", func(t *testing.T) {
		assert.NoError(t, ValidatePointTotal(resultsWithTotal(10, 10)))
		assert.NoError(t, ValidatePointTotal(resultsWithTotal(10, 15)))
	})

	t.Run("ten players reject other totals", func(t *testing.T) {
		err := ValidatePointTotal(resultsWithTotal(10, 11))
		require.Error(t, err)

		var pointErr *PointTotalError
		require.ErrorAs(t, err, &pointErr)
		assert.Equal(t, 10, pointErr.Players)
		assert.Equal(t, 11, pointErr.Total)
		assert.Equal(t, []int{10, 15}, pointErr.Expected)
		assert.Equal(t, "10 players must have 10 or 15 total points (Current: 11)", err.Error())
	})

	t.Run("twelve players accept both budgets", func(t *testing.T) {
		assert.NoError(t, ValidatePointTotal(resultsWithTotal(12, 12)))
		assert.NoError(t, ValidatePointTotal(resultsWithTotal(12, 18)))
	})

	t.Run("twelve players reject other totals", func(t *testing.T) {
		err := ValidatePointTotal(resultsWithTotal(12, 19))
		require.Error(t, err)
		assert.Equal(t, "12 players must have 12 or 18 total points (Current: 19)", err.Error())
	})

	t.Run("unconstrained sizes always pass", func(t *testing.T) {
		assert.NoError(t, ValidatePointTotal(resultsWithTotal(8, 999)))
		assert.NoError(t, ValidatePointTotal(resultsWithTotal(11, 1)))
	})
}

func TestSubmitResultsValidation(t *testing.T) {
	// All cases below fail before any database access.
	svc := NewResultService(nil, &fakeResultRepo{}, nil)
	ctx := context.Background()

	t.Run("missing date", func(t *testing.T) {
		err := svc.SubmitResults(ctx, SubmitResultsInput{
			Results: resultsWithTotal(10, 10),
		})
		assert.ErrorIs(t, err, ErrMissingDate)
	})

	t.Run("malformed date", func(t *testing.T) {
		err := svc.SubmitResults(ctx, SubmitResultsInput{
			Date:    "30-08-2026",
			Results: resultsWithTotal(10, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("empty sheet", func(t *testing.T) {
		err := svc.SubmitResults(ctx, SubmitResultsInput{Date: "2026-08-30"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("bad point total rejected before any write", func(t *testing.T) {
		err := svc.SubmitResults(ctx, SubmitResultsInput{
			Date:    "2026-08-30",
			Results: resultsWithTotal(10, 13),
		})

		var pointErr *PointTotalError
		assert.ErrorAs(t, err, &pointErr)
	})
}
