// Package courses implements the course catalog domain for Registrar.
// It defines the catalog record and the derived types that flow through
// the advising workflow, loads the catalog from its configured source,
// and exposes read-only HTTP endpoints over it.
package courses

import (
	"fmt"
	"strings"
	"unicode"
)

// GradeUnknown is substituted when a catalog record carries no grade summary.
const GradeUnknown = "N/A"

// Workload is a coarse estimate of course effort.
type Workload string

const (
	WorkloadHigh   Workload = "high"
	WorkloadMedium Workload = "medium"
	WorkloadLow    Workload = "low"
)

// ParseWorkload maps a case-insensitive tier name to a Workload.
func ParseWorkload(s string) (Workload, bool) {
	switch Workload(strings.ToLower(strings.TrimSpace(s))) {
	case WorkloadHigh:
		return WorkloadHigh, true
	case WorkloadMedium:
		return WorkloadMedium, true
	case WorkloadLow:
		return WorkloadLow, true
	}
	return "", false
}

// Difficulty is the enrollment-difficulty tier derived from enrolled/capacity.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyFor classifies the enrolled/capacity ratio: above 0.9 is hard,
// 0.7 through 0.9 is medium, below 0.7 is easy. A non-positive capacity is hard.
func DifficultyFor(enrolled, capacity int) Difficulty {
	if capacity <= 0 {
		return DifficultyHard
	}

	ratio := float64(enrolled) / float64(capacity)
	switch {
	case ratio > 0.9:
		return DifficultyHard
	case ratio >= 0.7:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// Course is an immutable catalog record.
type Course struct {
	ID          int      `json:"class_id"`
	Code        string   `json:"course_code"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Grade       string   `json:"grade,omitempty"`
	ClassTimes  []string `json:"class_times"`
	Enrolled    int      `json:"enrolled"`
	MaxEnroll   int      `json:"max_enroll"`
	Workload    Workload `json:"workload,omitempty"`
}

// GradeLabel returns the catalog grade verbatim, or GradeUnknown when absent.
func (c Course) GradeLabel() string {
	if strings.TrimSpace(c.Grade) == "" {
		return GradeUnknown
	}
	return c.Grade
}

// ConflictsWith reports whether any of the two courses' time slots intersect.
func (c Course) ConflictsWith(other Course) bool {
	return SlotsOverlap(c.ClassTimes, other.ClassTimes)
}

// ScoredCourse is a Course with its alignment against the stated interests.
type ScoredCourse struct {
	Course
	AlignmentScore float64 `json:"alignment_score"`
	Rationale      string  `json:"rationale"`
}

// EnrichedCourse is a ScoredCourse annotated with workload and grade data.
type EnrichedCourse struct {
	ScoredCourse
	AverageGrade string   `json:"average_grade"`
	Tier         Workload `json:"workload_tier"`
	Commentary   string   `json:"commentary"`
}

// Recommendation is a published course suggestion.
type Recommendation struct {
	CourseID             int        `json:"course_id"`
	CourseCode           string     `json:"course_code"`
	Title                string     `json:"title"`
	Reason               string     `json:"reason"`
	AverageGrade         string     `json:"average_grade"`
	Workload             Workload   `json:"workload"`
	EnrollmentDifficulty Difficulty `json:"enrollment_difficulty"`
	ClassTimes           []string   `json:"class_times"`
	Comments             string     `json:"comments"`
	AlignmentScore       float64    `json:"alignment_score"`
}

// NewRecommendation builds a Recommendation from an enriched course. An empty
// reason falls back to the course's match rationale.
func NewRecommendation(e EnrichedCourse, reason string) Recommendation {
	if strings.TrimSpace(reason) == "" {
		reason = e.Rationale
	}

	difficulty := DifficultyFor(e.Enrolled, e.MaxEnroll)
	comments := strings.TrimSpace(fmt.Sprintf(
		"%s Enrollment difficulty is %s (%d/%d seats filled).",
		e.Commentary, difficulty, e.Enrolled, e.MaxEnroll,
	))

	times := e.ClassTimes
	if times == nil {
		times = []string{}
	}

	return Recommendation{
		CourseID:             e.ID,
		CourseCode:           e.Code,
		Title:                e.Title,
		Reason:               reason,
		AverageGrade:         e.AverageGrade,
		Workload:             e.Tier,
		EnrollmentDifficulty: difficulty,
		ClassTimes:           times,
		Comments:             comments,
		AlignmentScore:       e.AlignmentScore,
	}
}

var codeAliases = map[string]string{
	"compsci": "cs",
	"elengin": "ee",
	"stat":    "stats",
}

// CodeKey normalizes a course code for comparison: lowercase, separators
// removed, and well-known department aliases folded ("COMPSCI 61A" and
// "cs61a" share the key "cs61a").
func CodeKey(code string) string {
	var dept, rest strings.Builder
	inDept := true

	for _, r := range strings.ToLower(code) {
		switch {
		case unicode.IsLetter(r) && inDept:
			dept.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inDept = false
			rest.WriteRune(r)
		}
	}

	d := dept.String()
	if alias, ok := codeAliases[d]; ok {
		d = alias
	}
	return d + rest.String()
}
