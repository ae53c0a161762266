package courses

import (
	"context"

	"github.com/JaimeStill/registrar/pkg/pagination"
)

// System defines the public contract for catalog operations.
type System interface {
	Handler() *Handler

	// Load reads and decodes the full catalog from its source. Every call
	// performs a fresh read.
	Load(ctx context.Context) ([]Course, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Course], error)

	Find(ctx context.Context, id int) (*Course, error)
}
