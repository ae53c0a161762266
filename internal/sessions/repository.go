package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/pkg/cache"
	"github.com/JaimeStill/registrar/pkg/pagination"
	"github.com/JaimeStill/registrar/pkg/query"
	"github.com/JaimeStill/registrar/pkg/repository"
)

type repo struct {
	db         *sql.DB
	cache      cache.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a session repository implementing the System interface.
// A nil cache disables read-through caching of Find.
func New(
	db *sql.DB,
	cache cache.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		cache:      cache,
		logger:     logger.With("system", "sessions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Session], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Request")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	if s, ok := r.cached(ctx, id); ok {
		return s, nil
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.store(ctx, &s)
	return &s, nil
}

func (r *repo) SavePlan(ctx context.Context, id uuid.UUID, cmd PlanCommand) (*Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	matched, err := json.Marshal(nonNil(cmd.Matched))
	if err != nil {
		return nil, fmt.Errorf("encode matched: %w", err)
	}
	recs, err := json.Marshal(cmd.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("encode recommendations: %w", err)
	}

	q := `
		INSERT INTO sessions(id, request, matched, recommendations, revisions)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (id) DO UPDATE
		SET request = EXCLUDED.request,
			matched = EXCLUDED.matched,
			recommendations = EXCLUDED.recommendations,
			revisions = 0,
			updated_at = now()
		RETURNING ` + columns

	args := []any{id, cmd.Request, matched, recs}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		return repository.QueryOne(ctx, tx, q, args, scanSession)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.store(ctx, &s)
	r.logger.Info("session plan saved", "id", s.ID, "recommendations", len(s.Recommendations))
	return &s, nil
}

func (r *repo) SaveRevision(ctx context.Context, id uuid.UUID, recs []courses.Recommendation) (*Session, error) {
	if len(recs) == 0 {
		return nil, ErrEmptyPlan
	}

	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode recommendations: %w", err)
	}

	q := `
		UPDATE sessions
		SET recommendations = $1, revisions = revisions + 1, updated_at = now()
		WHERE id = $2
		RETURNING ` + columns

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		return repository.QueryOne(ctx, tx, q, []any{data, id}, scanSession)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.store(ctx, &s)
	r.logger.Info("session revised", "id", s.ID, "revisions", s.Revisions)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM sessions WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.evict(ctx, id)
	r.logger.Info("session deleted", "id", id)
	return nil
}

// cached reports a cache hit. Cache failures are logged and treated as misses
// so an unavailable cache never fails a request.
func (r *repo) cached(ctx context.Context, id uuid.UUID) (*Session, bool) {
	if r.cache == nil {
		return nil, false
	}

	data, err := r.cache.Get(ctx, cacheKey(id))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			r.logger.WarnContext(ctx, "session cache read failed", "id", id, "error", err)
		}
		return nil, false
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.WarnContext(ctx, "session cache entry corrupt", "id", id, "error", err)
		r.evict(ctx, id)
		return nil, false
	}

	return &s, true
}

func (r *repo) store(ctx context.Context, s *Session) {
	if r.cache == nil {
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		r.logger.WarnContext(ctx, "session cache encode failed", "id", s.ID, "error", err)
		return
	}

	if err := r.cache.Set(ctx, cacheKey(s.ID), data); err != nil {
		r.logger.WarnContext(ctx, "session cache write failed", "id", s.ID, "error", err)
	}
}

func (r *repo) evict(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}

	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		r.logger.WarnContext(ctx, "session cache delete failed", "id", id, "error", err)
	}
}

func cacheKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
