package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/pkg/pagination"
)

// System defines the public contract for session persistence.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Session], error)

	Find(ctx context.Context, id uuid.UUID) (*Session, error)

	// SavePlan creates the session or overwrites every field of an existing
	// one, resetting its revision count.
	SavePlan(ctx context.Context, id uuid.UUID, cmd PlanCommand) (*Session, error)

	// SaveRevision replaces the recommendations of an existing session and
	// increments its revision count. The matched set is left unchanged.
	SaveRevision(ctx context.Context, id uuid.UUID, recs []courses.Recommendation) (*Session, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
