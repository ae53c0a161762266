// Package advisor serves the recommend operation: it binds a message to its
// session, runs the planning workflow, and persists the outcome.
package advisor

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/workflow"
)

// Response types.
const (
	TypeRecommendations = "recommendations"
	TypeGeneralResponse = "general_response"
)

const (
	messageInitial = "Successfully generated initial recommendations"
	messageUpdated = "Successfully updated recommendations"
)

// Request is the body of POST /recommend. A missing SessionID starts a new
// session.
type Request struct {
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	Message   string     `json:"message"`
}

// Response is the success body of POST /recommend. Recommendation responses
// carry the session id and four recommendations; general responses carry only
// the answer in Message.
type Response struct {
	Type            string                   `json:"type"`
	SessionID       *uuid.UUID               `json:"session_id,omitempty"`
	Category        workflow.Category        `json:"category"`
	Recommendations []courses.Recommendation `json:"recommendations,omitempty"`
	Revision        *workflow.Revision       `json:"revision,omitempty"`
	Message         string                   `json:"message"`
}

// ErrorResponse is the failure body of POST /recommend.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
