package scheduler

import (
	"math"

	"github.com/arnavshah/rotation-api-go/pkg/models"
)

// AssignmentCounts returns, per group and member index, how many slots the
// member fills across the given weeks
func AssignmentCounts(registry *models.StaffRegistry, weeks []models.DecidedWeek) [][]int {
	counts := make([][]int, len(registry.Groups))
	for g, size := range registry.GroupSizes() {
		counts[g] = make([]int, size)
	}
	add := func(refs []models.StaffRef) {
		for _, r := range refs {
			if r.GroupID >= 0 && r.GroupID < len(counts) && r.Index >= 0 && r.Index < len(counts[r.GroupID]) {
				counts[r.GroupID][r.Index]++
			}
		}
	}
	for _, w := range weeks {
		for _, d := range w.Days {
			add(d.Morning)
			add(d.Afternoon)
		}
	}
	return counts
}

// FairnessScore returns a percentage (0-100) representing how evenly slots
// are spread over every registered member. 100% is perfectly fair
// (Standard Deviation = 0).
func FairnessScore(registry *models.StaffRegistry, weeks []models.DecidedWeek) float64 {
	var values []float64
	for _, group := range AssignmentCounts(registry, weeks) {
		for _, c := range group {
			values = append(values, float64(c))
		}
	}
	if len(values) == 0 {
		return 100.0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return 100.0 // Nobody assigned is perfectly fair
	}
	mean := sum / float64(len(values))

	var varianceSum float64
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(values)))

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
