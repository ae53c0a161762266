package workflow

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/prompts"
)

// Settings tunes the deterministic stages and the enrichment fan-out.
type Settings struct {
	MatchLimit        int
	HighWorkload      []string
	EnrichBatchSize   int
	EnrichConcurrency int
}

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Completer Completer
	Courses   courses.System
	Prompts   prompts.System
	Settings  Settings
	Logger    *slog.Logger
	Tracer    trace.Tracer
}

func (rt *Runtime) tracer() trace.Tracer {
	if rt.Tracer == nil {
		return noop.NewTracerProvider().Tracer("registrar/workflow")
	}
	return rt.Tracer
}

func (rt *Runtime) matchLimit() int {
	if rt.Settings.MatchLimit < 1 {
		return DefaultMatchLimit
	}
	return rt.Settings.MatchLimit
}

func (rt *Runtime) enrichBatchSize(n int) int {
	if rt.Settings.EnrichBatchSize < 1 {
		return max(n, 1)
	}
	return rt.Settings.EnrichBatchSize
}

func (rt *Runtime) enrichConcurrency() int {
	return max(rt.Settings.EnrichConcurrency, 1)
}
