// Package sessions persists the advisor's per-conversation state: the last
// new-plan request, the matched candidate set, and the current recommendations.
package sessions

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/internal/courses"
)

// Session is the state carried between a new-plan request and its follow-ups.
type Session struct {
	ID              uuid.UUID                `json:"id"`
	Request         string                   `json:"request"`
	Matched         []courses.EnrichedCourse `json:"matched"`
	Recommendations []courses.Recommendation `json:"recommendations"`
	Revisions       int                      `json:"revisions"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// PlanCommand replaces a session's state after a new-plan cycle.
type PlanCommand struct {
	Request         string
	Matched         []courses.EnrichedCourse
	Recommendations []courses.Recommendation
}

// Validate checks that the plan is complete enough to serve follow-ups.
func (c PlanCommand) Validate() error {
	if len(c.Recommendations) == 0 {
		return ErrEmptyPlan
	}
	return nil
}
