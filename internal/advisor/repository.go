package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/internal/sessions"
	"github.com/JaimeStill/registrar/internal/workflow"
)

type advisor struct {
	rt       *workflow.Runtime
	sessions sessions.System
	locks    *sessionLocks
	logger   *slog.Logger
}

// New creates the advisor system over a workflow runtime and session store.
func New(rt *workflow.Runtime, sessions sessions.System, logger *slog.Logger) System {
	return &advisor{
		rt:       rt,
		sessions: sessions,
		locks:    newSessionLocks(),
		logger:   logger.With("system", "advisor"),
	}
}

func (a *advisor) Handler() *Handler {
	return NewHandler(a, a.logger)
}

func (a *advisor) Recommend(ctx context.Context, req Request) (*Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrMissingInput
	}

	id := uuid.New()
	if req.SessionID != nil {
		id = *req.SessionID
	}

	release := a.locks.lock(id)
	defer release()

	var prior *workflow.Prior
	if req.SessionID != nil {
		p, err := a.prior(ctx, id)
		if err != nil {
			return nil, err
		}
		prior = p
	}

	start := time.Now()

	result, err := workflow.Execute(ctx, a.rt, workflow.Input{
		Message: message,
		Prior:   prior,
	})
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "recommend complete",
		"session_id", id,
		"category", result.Classification.Category,
		"duration", time.Since(start),
	)

	switch result.Classification.Category {
	case workflow.CategoryNewPlan:
		if _, err := a.sessions.SavePlan(ctx, id, sessions.PlanCommand{
			Request:         message,
			Matched:         result.Matched,
			Recommendations: result.Recommendations,
		}); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		return recommendations(id, result, messageInitial), nil

	case workflow.CategoryFollowUp:
		if _, err := a.sessions.SaveRevision(ctx, id, result.Recommendations); err != nil {
			return nil, fmt.Errorf("save revision: %w", err)
		}
		return recommendations(id, result, messageUpdated), nil

	default:
		return &Response{
			Type:     TypeGeneralResponse,
			Category: result.Classification.Category,
			Message:  result.Answer,
		}, nil
	}
}

// prior loads the stored plan for id. A missing session yields a nil prior,
// which the revision stage rejects if the message turns out to be a follow-up.
func (a *advisor) prior(ctx context.Context, id uuid.UUID) (*workflow.Prior, error) {
	s, err := a.sessions.Find(ctx, id)
	if errors.Is(err, sessions.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &workflow.Prior{
		Matched:         s.Matched,
		Recommendations: s.Recommendations,
	}, nil
}

func recommendations(id uuid.UUID, result *workflow.Result, message string) *Response {
	return &Response{
		Type:            TypeRecommendations,
		SessionID:       &id,
		Category:        result.Classification.Category,
		Recommendations: result.Recommendations,
		Revision:        result.Revision,
		Message:         message,
	}
}
