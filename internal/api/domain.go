package api

import (
	"fmt"

	"github.com/JaimeStill/registrar/internal/advisor"
	"github.com/JaimeStill/registrar/internal/config"
	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/prompts"
	"github.com/JaimeStill/registrar/internal/sessions"
	"github.com/JaimeStill/registrar/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Advisor  advisor.System
	Courses  courses.System
	Prompts  prompts.System
	Sessions sessions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	source, err := catalogSource(&cfg.Catalog, runtime)
	if err != nil {
		return nil, err
	}

	coursesSystem := courses.New(
		source,
		cfg.Catalog.MaxSizeBytes(),
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Cache,
		runtime.Logger,
		runtime.Pagination,
	)

	sessionsSystem := sessions.New(
		runtime.Database.Connection(),
		runtime.Cache,
		runtime.Logger,
		runtime.Pagination,
	)

	wf := &workflow.Runtime{
		Completer: workflow.NewAgentCompleter(cfg.Agent),
		Courses:   coursesSystem,
		Prompts:   promptsSystem,
		Settings: workflow.Settings{
			MatchLimit:        cfg.Workflow.MatchLimit,
			HighWorkload:      cfg.Workflow.HighWorkload,
			EnrichBatchSize:   cfg.Workflow.EnrichBatchSize,
			EnrichConcurrency: cfg.Workflow.EnrichConcurrency,
		},
		Logger: runtime.Logger.With("system", "workflow"),
		Tracer: runtime.Tracing.Tracer(),
	}

	return &Domain{
		Advisor:  advisor.New(wf, sessionsSystem, runtime.Logger),
		Courses:  coursesSystem,
		Prompts:  promptsSystem,
		Sessions: sessionsSystem,
	}, nil
}

func catalogSource(cfg *config.CatalogConfig, runtime *Runtime) (courses.Source, error) {
	switch cfg.Source {
	case config.CatalogSourceBlob:
		if runtime.Storage == nil {
			return nil, fmt.Errorf("catalog source %q requires storage", cfg.Source)
		}
		return courses.BlobSource(runtime.Storage, cfg.BlobKey), nil
	default:
		return courses.FileSource(cfg.Path), nil
	}
}
