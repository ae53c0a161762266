package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/pkg/cache"
	"github.com/JaimeStill/registrar/pkg/pagination"
	"github.com/JaimeStill/registrar/pkg/query"
	"github.com/JaimeStill/registrar/pkg/repository"
)

const returning = "RETURNING id, name, stage, instructions, description, active"

type repo struct {
	db         *sql.DB
	cache      cache.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the prompt System. Effective stage instructions are cached
// when c is non-nil and evicted whenever an override for the stage changes.
func New(
	db *sql.DB,
	c cache.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		cache:      c,
		logger:     logger.With("system", "prompts"),
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
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Instructions(ctx context.Context, stage Stage) (string, error) {
	if text, ok := r.cached(ctx, stage); ok {
		return text, nil
	}

	var text string
	err := r.db.QueryRowContext(ctx,
		"SELECT instructions FROM prompts WHERE stage = $1 AND active = true",
		stage,
	).Scan(&text)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if text, err = Instructions(stage); err != nil {
			return "", err
		}
	case err != nil:
		return "", fmt.Errorf("query active prompt: %w", err)
	}

	r.store(ctx, stage, text)
	return text, nil
}

func (r *repo) Spec(ctx context.Context, stage Stage) (string, error) {
	return Spec(stage)
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Prompt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO prompts(name, stage, instructions, description)
		VALUES ($1, $2, $3, $4)
		` + returning

	args := []any{cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt created", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Prompt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE prompts
		SET name = $1, stage = $2, instructions = $3, description = $4
		WHERE id = $5
		` + returning

	var previous Stage
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		if err := tx.QueryRowContext(ctx, "SELECT stage FROM prompts WHERE id = $1", id).Scan(&previous); err != nil {
			return Prompt{}, err
		}
		args := []any{cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description, id}
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.evict(ctx, previous, p.Stage)
	r.logger.Info("prompt updated", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	stage, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Stage, error) {
		var stage Stage
		err := tx.QueryRowContext(ctx, "DELETE FROM prompts WHERE id = $1 RETURNING stage", id).Scan(&stage)
		return stage, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.evict(ctx, stage)
	r.logger.Info("prompt deleted", "id", id, "stage", stage)
	return nil
}

func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		var stage Stage
		if err := tx.QueryRowContext(ctx, "SELECT stage FROM prompts WHERE id = $1", id).Scan(&stage); err != nil {
			return Prompt{}, err
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE prompts SET active = false WHERE stage = $1 AND active = true",
			stage,
		); err != nil {
			return Prompt{}, fmt.Errorf("deactivate current: %w", err)
		}

		return repository.QueryOne(ctx, tx,
			"UPDATE prompts SET active = true WHERE id = $1 "+returning,
			[]any{id}, scanPrompt,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.evict(ctx, p.Stage)
	r.logger.Info("prompt activated", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return &p, nil
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx,
			"UPDATE prompts SET active = false WHERE id = $1 "+returning,
			[]any{id}, scanPrompt,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.evict(ctx, p.Stage)
	r.logger.Info("prompt deactivated", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return &p, nil
}

// cached reports a hit for the stage's effective instructions. Cache errors
// are logged and treated as misses.
func (r *repo) cached(ctx context.Context, stage Stage) (string, bool) {
	if r.cache == nil {
		return "", false
	}

	data, err := r.cache.Get(ctx, cacheKey(stage))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			r.logger.WarnContext(ctx, "prompt cache read failed", "stage", stage, "error", err)
		}
		return "", false
	}
	return string(data), true
}

func (r *repo) store(ctx context.Context, stage Stage, text string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(stage), []byte(text)); err != nil {
		r.logger.WarnContext(ctx, "prompt cache write failed", "stage", stage, "error", err)
	}
}

func (r *repo) evict(ctx context.Context, stages ...Stage) {
	if r.cache == nil {
		return
	}
	for _, stage := range stages {
		if stage == "" {
			continue
		}
		if err := r.cache.Delete(ctx, cacheKey(stage)); err != nil {
			r.logger.WarnContext(ctx, "prompt cache delete failed", "stage", stage, "error", err)
		}
	}
}

func cacheKey(stage Stage) string {
	return "prompt:" + string(stage)
}
