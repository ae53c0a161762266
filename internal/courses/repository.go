package courses

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/registrar/pkg/formatting"
	"github.com/JaimeStill/registrar/pkg/pagination"
)

type repo struct {
	source     Source
	maxSize    int64
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a catalog system reading from source. Documents larger than
// maxSize bytes are rejected.
func New(
	source Source,
	maxSize int64,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		source:     source,
		maxSize:    maxSize,
		logger:     logger.With("system", "courses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Load(ctx context.Context) ([]Course, error) {
	rc, err := r.source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrCatalogUnavailable, r.source, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, r.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCatalogUnavailable, r.source, err)
	}

	if int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf(
			"%w: %s exceeds %s",
			ErrCatalogUnavailable, r.source, formatting.FormatBytes(r.maxSize, 1),
		)
	}

	catalog, dups, err := decodeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCatalogUnavailable, r.source, err)
	}

	if len(dups) > 0 {
		r.logger.WarnContext(ctx, "duplicate class_id skipped",
			"source", r.source.String(),
			"class_ids", dups,
		)
	}

	r.logger.DebugContext(ctx, "catalog loaded",
		"source", r.source.String(),
		"courses", len(catalog),
		"size", formatting.FormatBytes(int64(len(data)), 1),
	)

	return catalog, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Course], error) {
	page.Normalize(r.pagination)

	catalog, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Course, 0, len(catalog))
	for _, c := range catalog {
		if matchesSearch(c, page.Search) && filters.Matches(c) {
			items = append(items, c)
		}
	}

	sortCourses(items, page.Sort)

	result := pagination.Paginate(items, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int) (*Course, error) {
	catalog, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range catalog {
		if c.ID == id {
			return &c, nil
		}
	}

	return nil, ErrNotFound
}

// decodeCatalog keeps the first course for each class_id and returns the ids
// of the later duplicates it dropped.
func decodeCatalog(data []byte) ([]Course, []int, error) {
	var raw []Course
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	catalog := make([]Course, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))
	var dups []int

	for _, c := range raw {
		if c.Code == "" {
			return nil, nil, fmt.Errorf("course %d: missing course_code", c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			dups = append(dups, c.ID)
			continue
		}
		seen[c.ID] = struct{}{}

		if c.Grade == "" {
			c.Grade = GradeUnknown
		}
		if c.ClassTimes == nil {
			c.ClassTimes = []string{}
		}
		c.Workload, _ = ParseWorkload(string(c.Workload))
		catalog = append(catalog, c)
	}

	return catalog, dups, nil
}
