package rotation

import (
	"math"

	"github.com/arnavshah/noc-rotation-go/pkg/models"
)

// stats summarises per-category tallies, where tally[c][i] counts the slots
// given to the i-th worker of the category pool. Spread and FairnessScore use
// pool positions, so two workers sharing an email still count separately.
// PerWorker sums by email and includes pool members never assigned.
func (g *Generator) stats(days int, tally map[models.ShiftCategory][]int) map[models.ShiftCategory]models.CategoryStats {
	stats := make(map[models.ShiftCategory]models.CategoryStats, len(models.Categories))

	for _, c := range models.Categories {
		counts := tally[c]
		per := make(map[string]int, len(g.Pools[c]))
		slots := 0
		for i, w := range g.Pools[c] {
			per[w.Email] += counts[i]
			slots += counts[i]
		}

		stats[c] = models.CategoryStats{
			Slots:         slots,
			Gaps:          days - slots,
			PerWorker:     per,
			Spread:        Spread(counts),
			FairnessScore: CalculateFairnessScore(counts),
		}
	}
	return stats
}

// Spread returns max - min of the counts, or 0 for an empty pool
func Spread(counts []int) int {
	if len(counts) == 0 {
		return 0
	}
	lo, hi := counts[0], counts[0]
	for _, n := range counts[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

// CalculateFairnessScore returns a percentage (0-100) representing how evenly
// slots are distributed. 100% is perfectly fair (Standard Deviation = 0).
func CalculateFairnessScore(counts []int) float64 {
	if len(counts) == 0 {
		return 100.0
	}

	var sum float64
	for _, n := range counts {
		sum += float64(n)
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(counts))

	var varianceSum float64
	for _, n := range counts {
		diff := float64(n) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(counts)))

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
