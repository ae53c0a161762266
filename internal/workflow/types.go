package workflow

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/registrar/internal/courses"
)

// KeyCycle is the state key holding the in-flight cycle.
const KeyCycle = "cycle"

// Category is the routing decision made by the classifier.
type Category string

// Request categories.
const (
	CategoryNewPlan      Category = "new-plan"
	CategoryFollowUp     Category = "follow-up"
	CategoryGeneralQuery Category = "general-query"
)

var categoryLabels = map[string]Category{
	"new-plan":           CategoryNewPlan,
	"new_plan":           CategoryNewPlan,
	"first_time_request": CategoryNewPlan,
	"follow-up":          CategoryFollowUp,
	"follow_up":          CategoryFollowUp,
	"follow_up_request":  CategoryFollowUp,
	"general-query":      CategoryGeneralQuery,
	"general_query":      CategoryGeneralQuery,
}

// ParseCategory maps a model label to a Category. Unknown labels fail with
// ErrUnrecognizedCategory.
func ParseCategory(label string) (Category, error) {
	c, ok := categoryLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedCategory, label)
	}
	return c, nil
}

// Classification is the classifier's verdict for a request.
type Classification struct {
	Category Category `json:"category"`
	Reason   string   `json:"reason"`
}

// ExtractedRequest holds the structured fields pulled from a new-plan request.
// Both lists are always non-nil.
type ExtractedRequest struct {
	TakenCourses []string `json:"taken_courses"`
	Interests    []string `json:"interests"`
}

// Revision records the single position changed by a follow-up.
type Revision struct {
	Index   int                    `json:"index"`
	Removed courses.Recommendation `json:"removed"`
	Added   courses.Recommendation `json:"added"`
	Reason  string                 `json:"reason"`
}

// Prior carries the previous cycle's output into a follow-up.
type Prior struct {
	Matched         []courses.EnrichedCourse `json:"matched"`
	Recommendations []courses.Recommendation `json:"recommendations"`
}

// Input is a single request entering the workflow.
type Input struct {
	Message string
	Prior   *Prior
}

// Result is the outcome of a completed cycle. Matched and Recommendations
// are set for new-plan and follow-up; Answer is set for general-query.
type Result struct {
	Classification  Classification           `json:"classification"`
	Extracted       *ExtractedRequest        `json:"extracted,omitempty"`
	Matched         []courses.EnrichedCourse `json:"matched,omitempty"`
	Recommendations []courses.Recommendation `json:"recommendations,omitempty"`
	Revision        *Revision                `json:"revision,omitempty"`
	Answer          string                   `json:"answer,omitempty"`
}

// cycle is the state value threaded through graph nodes.
type cycle struct {
	Input
	Classification  Classification
	Extracted       ExtractedRequest
	Catalog         []courses.Course
	Eligible        []courses.Course
	Scored          []courses.ScoredCourse
	Enriched        []courses.EnrichedCourse
	Recommendations []courses.Recommendation
	Revision        *Revision
	Answer          string
}

func (c cycle) result() *Result {
	r := &Result{
		Classification:  c.Classification,
		Recommendations: c.Recommendations,
		Revision:        c.Revision,
		Answer:          c.Answer,
	}

	switch c.Classification.Category {
	case CategoryNewPlan:
		extracted := c.Extracted
		r.Extracted = &extracted
		r.Matched = c.Enriched
	case CategoryFollowUp:
		if c.Prior != nil {
			r.Matched = c.Prior.Matched
		}
	}

	return r
}
