package engine

import (
	"fmt"
	"testing"

	"github.com/markdarcy45-oss/Teams/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specPool() []models.RankedPlayer {
	return []models.RankedPlayer{
		{Name: "A", Rank: 5},
		{Name: "B", Rank: 3},
		{Name: "C", Rank: 3},
		{Name: "D", Rank: 1},
	}
}

func TestRandomSearchBalancer(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		_, err := NewRandomSearchBalancer().Balance(nil)
		assert.ErrorIs(t, err, ErrEmptyPool)
	})

	t.Run("finds perfect split for small pool", func(t *testing.T) {
		res, err := NewSeededRandomSearchBalancer(1).Balance(specPool())
		require.NoError(t, err)

		assert.Len(t, res.Team1, 2)
		assert.Len(t, res.Team2, 2)
		assert.Equal(t, 6, res.Total1)
		assert.Equal(t, 6, res.Total2)
		assert.Equal(t, 0, res.Difference)
	})

	t.Run("equal ranks always balance to zero", func(t *testing.T) {
		pool := make([]models.RankedPlayer, 8)
		for i := range pool {
			pool[i] = models.RankedPlayer{Name: fmt.Sprintf("p%d", i), Rank: 4}
		}

		res, err := NewSeededRandomSearchBalancer(7).Balance(pool)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Difference)
	})

	t.Run("split sizes", func(t *testing.T) {
		for _, n := range []int{1, 2, 3, 5, 10, 11} {
			pool := make([]models.RankedPlayer, n)
			for i := range pool {
				pool[i] = models.RankedPlayer{Name: fmt.Sprintf("p%d", i), Rank: i}
			}

			res, err := NewSeededRandomSearchBalancer(int64(n)).Balance(pool)
			require.NoError(t, err)

			assert.Equal(t, n, len(res.Team1)+len(res.Team2))
			assert.Equal(t, n/2, len(res.Team1))
			assert.LessOrEqual(t, len(res.Team2)-len(res.Team1), 1)
		}
	})

	t.Run("teams sorted by rank then name", func(t *testing.T) {
		res, err := NewSeededRandomSearchBalancer(3).Balance(specPool())
		require.NoError(t, err)

		for _, team := range [][]models.RankedPlayer{res.Team1, res.Team2} {
			for i := 1; i < len(team); i++ {
				assert.LessOrEqual(t, team[i-1].Rank, team[i].Rank)
			}
		}
	})
}

func TestGreedyBalancer(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		_, err := NewGreedyBalancer().Balance(nil)
		assert.ErrorIs(t, err, ErrEmptyPool)
	})

	t.Run("spec example splits evenly", func(t *testing.T) {
		res, err := NewGreedyBalancer().Balance(specPool())
		require.NoError(t, err)

		assert.Equal(t, 6, res.Total1)
		assert.Equal(t, 6, res.Total2)
		assert.Equal(t, 0, res.Difference)
		assert.Equal(t, []models.RankedPlayer{{Name: "D", Rank: 1}, {Name: "A", Rank: 5}}, res.Team1)
		assert.Equal(t, []models.RankedPlayer{{Name: "B", Rank: 3}, {Name: "C", Rank: 3}}, res.Team2)
	})

	t.Run("odd pool gives team2 the extra player", func(t *testing.T) {
		pool := []models.RankedPlayer{
			{Name: "A", Rank: 4}, {Name: "B", Rank: 3}, {Name: "C", Rank: 2},
			{Name: "D", Rank: 1}, {Name: "E", Rank: 0},
		}

		res, err := NewGreedyBalancer().Balance(pool)
		require.NoError(t, err)
		assert.Len(t, res.Team1, 2)
		assert.Len(t, res.Team2, 3)
	})

	t.Run("deterministic", func(t *testing.T) {
		b := NewGreedyBalancer()
		first, err := b.Balance(specPool())
		require.NoError(t, err)
		second, err := b.Balance(specPool())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

// The randomized search is a heuristic, but it should never lose to the
// greedy baseline on pools small enough that 100 trials cover the space.
func TestRandomSearchMatchesGreedyOnSmallPools(t *testing.T) {
	pool := []models.RankedPlayer{
		{Name: "A", Rank: 9}, {Name: "B", Rank: 7}, {Name: "C", Rank: 4},
		{Name: "D", Rank: 4}, {Name: "E", Rank: 3}, {Name: "F", Rank: 1},
	}

	greedy, err := NewGreedyBalancer().Balance(pool)
	require.NoError(t, err)

	random, err := NewSeededRandomSearchBalancer(42).Balance(pool)
	require.NoError(t, err)

	assert.LessOrEqual(t, random.Difference, greedy.Difference)
}
