package engine

import (
	"math/rand"
	"time"

	"github.com/markdarcy45-oss/Teams/models"
)

const (
	balanceTrials = 100
	// A split whose rank sums differ by at most 1 cannot generally be
	// improved, so the search stops early.
	goodEnoughDiff = 1
)

// RandomSearchBalancer runs a bounded best-of-N search over uniformly random
// permutations of the pool. It is a best-effort heuristic: ties between
// equally good splits are broken by trial order.
type RandomSearchBalancer struct {
	rng *rand.Rand
}

func NewRandomSearchBalancer() *RandomSearchBalancer {
	return &RandomSearchBalancer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededRandomSearchBalancer fixes the random source, making runs
// reproducible.
func NewSeededRandomSearchBalancer(seed int64) *RandomSearchBalancer {
	return &RandomSearchBalancer{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (b *RandomSearchBalancer) GetName() string {
	return "RandomSearch"
}

func (b *RandomSearchBalancer) Balance(pool []models.RankedPlayer) (*models.BalanceResult, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	half := len(pool) / 2
	shuffled := make([]models.RankedPlayer, len(pool))
	copy(shuffled, pool)

	var bestT1, bestT2 []models.RankedPlayer
	var bestSum1, bestSum2 int
	minDiff := -1

	for trial := 0; trial < balanceTrials; trial++ {
		b.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		sum1 := rankSum(shuffled[:half])
		sum2 := rankSum(shuffled[half:])
		diff := sum1 - sum2
		if diff < 0 {
			diff = -diff
		}

		if minDiff < 0 || diff < minDiff {
			minDiff = diff
			bestT1 = append([]models.RankedPlayer(nil), shuffled[:half]...)
			bestT2 = append([]models.RankedPlayer(nil), shuffled[half:]...)
			bestSum1, bestSum2 = sum1, sum2
		}

		if minDiff <= goodEnoughDiff {
			break
		}
	}

	return newBalanceResult(bestT1, bestT2, bestSum1, bestSum2, minDiff), nil
}
