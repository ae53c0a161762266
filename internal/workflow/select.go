package workflow

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/JaimeStill/registrar/internal/courses"
)

// PlanSize is the number of recommendations in a completed plan.
const PlanSize = 4

// Select picks PlanSize courses with no pairwise time conflict. Candidates
// are ranked by score desc, then code, then id, and the search returns the
// earliest conflict-free combination in that ranking, which equals the
// greedy choice whenever greedy succeeds.
func Select(enriched []courses.EnrichedCourse) ([]courses.Recommendation, error) {
	ranked := slices.Clone(enriched)
	slices.SortStableFunc(ranked, compareEnriched)

	chosen := make([]int, 0, PlanSize)

	var search func(start int) bool
	search = func(start int) bool {
		if len(chosen) == PlanSize {
			return true
		}
		for i := start; i <= len(ranked)-(PlanSize-len(chosen)); i++ {
			if conflictsWithChosen(ranked, chosen, i) {
				continue
			}
			chosen = append(chosen, i)
			if search(i + 1) {
				return true
			}
			chosen = chosen[:len(chosen)-1]
		}
		return false
	}

	if !search(0) {
		return nil, fmt.Errorf(
			"%w: %d candidates yield no %d-course schedule without time conflicts",
			ErrInsufficientCandidates, len(ranked), PlanSize,
		)
	}

	recs := make([]courses.Recommendation, PlanSize)
	for i, idx := range chosen {
		recs[i] = courses.NewRecommendation(ranked[idx], "")
	}
	return recs, nil
}

func conflictsWithChosen(ranked []courses.EnrichedCourse, chosen []int, i int) bool {
	for _, j := range chosen {
		if ranked[j].ID == ranked[i].ID || ranked[i].ConflictsWith(ranked[j].Course) {
			return true
		}
	}
	return false
}

func compareEnriched(a, b courses.EnrichedCourse) int {
	if c := cmp.Compare(b.AlignmentScore, a.AlignmentScore); c != 0 {
		return c
	}
	if c := cmp.Compare(courses.CodeKey(a.Code), courses.CodeKey(b.Code)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
