package workflow_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/workflow"
)

func enriched(id int, code string, score float64, slots ...string) courses.EnrichedCourse {
	return courses.EnrichedCourse{
		ScoredCourse: courses.ScoredCourse{
			Course: courses.Course{
				ID:         id,
				Code:       code,
				ClassTimes: slots,
				Enrolled:   50,
				MaxEnroll:  100,
			},
			AlignmentScore: score,
		},
		AverageGrade: "B",
		Tier:         courses.WorkloadMedium,
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		input []courses.EnrichedCourse
		want  []int
	}{
		{
			"greedy top four",
			[]courses.EnrichedCourse{
				enriched(1, "A 1", 9, "M 9-10am"),
				enriched(2, "A 2", 8, "Tu 9-10am"),
				enriched(3, "A 3", 7, "W 9-10am"),
				enriched(4, "A 4", 6, "Th 9-10am"),
				enriched(5, "A 5", 5, "F 9-10am"),
			},
			[]int{1, 2, 3, 4},
		},
		{
			"skips conflicting course",
			[]courses.EnrichedCourse{
				enriched(1, "A 1", 9, "MWF 9:00-10:00am"),
				enriched(2, "A 2", 8, "MWF9"),
				enriched(3, "A 3", 7, "TuTh 9-10:30am"),
				enriched(4, "A 4", 6, "MW 1-2pm"),
				enriched(5, "A 5", 5, "F 3-4pm"),
			},
			[]int{1, 3, 4, 5},
		},
		{
			"backtracks past the top course",
			[]courses.EnrichedCourse{
				enriched(1, "A 1", 9, "M 9-10am", "F 9-10am"),
				enriched(2, "A 2", 8, "Tu 9-10am"),
				enriched(3, "A 3", 7, "W 9-10am"),
				enriched(4, "A 4", 6, "M 9:30-10:30am"),
				enriched(5, "A 5", 5, "F 9-10am"),
			},
			[]int{2, 3, 4, 5},
		},
		{
			"input order does not matter",
			[]courses.EnrichedCourse{
				enriched(5, "A 5", 5, "F 9-10am"),
				enriched(3, "A 3", 7, "W 9-10am"),
				enriched(1, "A 1", 9, "M 9-10am"),
				enriched(4, "A 4", 6, "Th 9-10am"),
				enriched(2, "A 2", 8, "Tu 9-10am"),
			},
			[]int{1, 2, 3, 4},
		},
		{
			"two-letter day slots",
			[]courses.EnrichedCourse{
				enriched(1, "A 1", 9, "MoWeFr 10:00-11:00"),
				enriched(2, "A 2", 8, "Mo 10:30-11:30"),
				enriched(3, "A 3", 7, "We 10:00-11:00"),
				enriched(4, "A 4", 6, "Fr 10:00-11:00"),
				enriched(5, "A 5", 5, "TuTh 9:00-10:00"),
				enriched(6, "A 6", 4, "Th 13:00-14:00"),
				enriched(7, "A 7", 3, "Fr 13:00-14:00"),
			},
			[]int{1, 5, 6, 7},
		},
		{
			"friday and thursday do not conflict",
			[]courses.EnrichedCourse{
				enriched(1, "A 1", 9, "Th 9:00-10:00"),
				enriched(2, "A 2", 8, "Fr 9:00-10:00"),
				enriched(3, "A 3", 7, "Mo 9:00-10:00"),
				enriched(4, "A 4", 6, "Tu 9:00-10:00"),
			},
			[]int{1, 2, 3, 4},
		},
		{
			"ties break by code",
			[]courses.EnrichedCourse{
				enriched(9, "B 1", 5, "M 9-10am"),
				enriched(8, "A 1", 5, "Tu 9-10am"),
				enriched(7, "C 1", 5, "W 9-10am"),
				enriched(6, "D 1", 5, "Th 9-10am"),
				enriched(5, "E 1", 5, "F 9-10am"),
			},
			[]int{8, 9, 7, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := workflow.Select(tt.input)
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}

			if got := recIDs(recs); !slices.Equal(got, tt.want) {
				t.Errorf("Select = %v, want %v", got, tt.want)
			}

			for i := range recs {
				for j := i + 1; j < len(recs); j++ {
					if courses.SlotsOverlap(recs[i].ClassTimes, recs[j].ClassTimes) {
						t.Errorf("%s overlaps %s", recs[i].CourseCode, recs[j].CourseCode)
					}
				}
			}
		})
	}
}

func TestSelectInsufficient(t *testing.T) {
	tests := []struct {
		name  string
		input []courses.EnrichedCourse
	}{
		{"empty", nil},
		{"three courses", []courses.EnrichedCourse{
			enriched(1, "A 1", 9, "M 9-10am"),
			enriched(2, "A 2", 8, "Tu 9-10am"),
			enriched(3, "A 3", 7, "W 9-10am"),
		}},
		{"all conflict", []courses.EnrichedCourse{
			enriched(1, "A 1", 9, "MWF9"),
			enriched(2, "A 2", 8, "MWF9"),
			enriched(3, "A 3", 7, "MWF9"),
			enriched(4, "A 4", 6, "MWF9"),
			enriched(5, "A 5", 5, "M 9:30-10:30am"),
		}},
		{"two-letter days all conflict", []courses.EnrichedCourse{
			enriched(1, "A 1", 9, "MoWeFr 10:00-11:00"),
			enriched(2, "A 2", 8, "Mo 10:30-11:30"),
			enriched(3, "A 3", 7, "MoWe 10:00-11:00"),
			enriched(4, "A 4", 6, "WeFr 10:30-11:00"),
			enriched(5, "A 5", 5, "TuTh 9:00-10:00"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := workflow.Select(tt.input); !errors.Is(err, workflow.ErrInsufficientCandidates) {
				t.Errorf("err = %v, want ErrInsufficientCandidates", err)
			}
		})
	}
}

func TestSelectRecommendationFields(t *testing.T) {
	input := []courses.EnrichedCourse{
		enriched(1, "A 1", 9, "M 9-10am"),
		enriched(2, "A 2", 8, "Tu 9-10am"),
		enriched(3, "A 3", 7, "W 9-10am"),
		enriched(4, "A 4", 6, "Th 9-10am"),
	}
	input[0].Enrolled, input[0].MaxEnroll = 95, 100
	input[1].Enrolled, input[1].MaxEnroll = 75, 100
	input[0].AverageGrade = "A-"

	recs, err := workflow.Select(input)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if recs[0].EnrollmentDifficulty != courses.DifficultyHard {
		t.Errorf("difficulty = %s, want hard", recs[0].EnrollmentDifficulty)
	}
	if recs[1].EnrollmentDifficulty != courses.DifficultyMedium {
		t.Errorf("difficulty = %s, want medium", recs[1].EnrollmentDifficulty)
	}
	if recs[2].EnrollmentDifficulty != courses.DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", recs[2].EnrollmentDifficulty)
	}
	if recs[0].AverageGrade != "A-" {
		t.Errorf("grade = %q, want A-", recs[0].AverageGrade)
	}
}
