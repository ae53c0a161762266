package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/registrar/internal/courses"
)

// Execute runs one request through the advising graph:
//
//	classify → extract → filter → match → enrich → select → finalize
//	classify → revise → finalize
//	classify → respond → finalize
//
// The first failing node aborts the run and its error is returned unchanged.
func Execute(ctx context.Context, rt *Runtime, in Input) (*Result, error) {
	run := &execution{rt: rt}

	graph, err := run.buildGraph()
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyCycle, cycle{Input: in})

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		if run.failure != nil {
			return nil, run.failure
		}
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	c, err := cycleFrom(finalState)
	if err != nil {
		return nil, err
	}
	return c.result(), nil
}

// execution scopes one graph run so the first node failure is kept intact.
type execution struct {
	rt      *Runtime
	failure error
}

func (e *execution) buildGraph() (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("registrar-advise")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		fn   func(ctx context.Context, c *cycle) error
	}{
		{"classify", e.classify},
		{"extract", e.extract},
		{"filter", e.filter},
		{"match", e.match},
		{"enrich", e.enrich},
		{"select", e.selectPlan},
		{"revise", e.revise},
		{"respond", e.respond},
		{"finalize", e.finalize},
	}

	for _, n := range nodes {
		if err := graph.AddNode(n.name, e.node(n.name, n.fn)); err != nil {
			return nil, err
		}
	}

	edges := []struct {
		from, to string
		when     func(state.State) bool
	}{
		{"classify", "extract", isCategory(CategoryNewPlan)},
		{"classify", "revise", isCategory(CategoryFollowUp)},
		{"classify", "respond", isCategory(CategoryGeneralQuery)},
		{"extract", "filter", nil},
		{"filter", "match", nil},
		{"match", "enrich", nil},
		{"enrich", "select", nil},
		{"select", "finalize", nil},
		{"revise", "finalize", nil},
		{"respond", "finalize", nil},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge.from, edge.to, edge.when); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

// node wraps a stage in a span, logs its completion, and threads the cycle
// through state.
func (e *execution) node(name string, fn func(ctx context.Context, c *cycle) error) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := cycleFrom(s)
		if err != nil {
			return s, err
		}

		ctx, span := e.rt.tracer().Start(ctx, "workflow."+name)
		defer span.End()

		start := time.Now()
		if err := fn(ctx, &c); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if e.failure == nil {
				e.failure = fmt.Errorf("%s: %w", name, err)
			}
			return s, e.failure
		}

		span.SetAttributes(attribute.String("workflow.category", string(c.Classification.Category)))
		e.rt.Logger.InfoContext(
			ctx, "workflow node complete",
			"node", name,
			"duration", time.Since(start),
		)

		return s.Set(KeyCycle, c), nil
	})
}

func (e *execution) classify(ctx context.Context, c *cycle) error {
	cl, err := Classify(ctx, e.rt, c.Message)
	if err != nil {
		return err
	}
	c.Classification = cl
	return nil
}

func (e *execution) extract(ctx context.Context, c *cycle) error {
	ex, err := Extract(ctx, e.rt, c.Message)
	if err != nil {
		return err
	}
	c.Extracted = ex
	return nil
}

func (e *execution) filter(ctx context.Context, c *cycle) error {
	catalog, err := e.rt.Courses.Load(ctx)
	if err != nil {
		return err
	}
	c.Catalog = catalog
	c.Eligible = Filter(catalog, c.Extracted.TakenCourses)
	return nil
}

func (e *execution) match(ctx context.Context, c *cycle) error {
	c.Scored = Match(c.Eligible, c.Extracted.Interests, e.rt.matchLimit())
	return nil
}

func (e *execution) enrich(ctx context.Context, c *cycle) error {
	enriched, err := Enrich(ctx, e.rt, c.Scored)
	if err != nil {
		return err
	}
	c.Enriched = enriched
	return nil
}

func (e *execution) selectPlan(ctx context.Context, c *cycle) error {
	recs, err := Select(c.Enriched)
	if err != nil {
		return err
	}
	c.Recommendations = recs
	return nil
}

func (e *execution) revise(ctx context.Context, c *cycle) error {
	recs, rev, err := Revise(ctx, e.rt, c.Message, c.Prior)
	if err != nil {
		return err
	}
	c.Recommendations = recs
	c.Revision = rev
	return nil
}

func (e *execution) respond(ctx context.Context, c *cycle) error {
	answer, err := Respond(ctx, e.rt, c.Message)
	if err != nil {
		return err
	}
	c.Answer = answer
	return nil
}

// finalize checks the plan invariants before the result leaves the graph.
func (e *execution) finalize(ctx context.Context, c *cycle) error {
	if c.Classification.Category == CategoryGeneralQuery {
		return nil
	}

	if len(c.Recommendations) != PlanSize {
		return fmt.Errorf("%w: plan has %d courses", ErrInsufficientCandidates, len(c.Recommendations))
	}

	for i := range c.Recommendations {
		for j := i + 1; j < len(c.Recommendations); j++ {
			a, b := c.Recommendations[i], c.Recommendations[j]
			if a.CourseID == b.CourseID {
				return fmt.Errorf("duplicate recommendation %s", a.CourseCode)
			}
			if courses.SlotsOverlap(a.ClassTimes, b.ClassTimes) {
				return fmt.Errorf("recommendations %s and %s overlap", a.CourseCode, b.CourseCode)
			}
		}
	}
	return nil
}

func isCategory(category Category) func(state.State) bool {
	return func(s state.State) bool {
		c, err := cycleFrom(s)
		return err == nil && c.Classification.Category == category
	}
}

var errMissingCycle = errors.New("missing cycle in state")

func cycleFrom(s state.State) (cycle, error) {
	val, ok := s.Get(KeyCycle)
	if !ok {
		return cycle{}, errMissingCycle
	}

	c, ok := val.(cycle)
	if !ok {
		return cycle{}, fmt.Errorf("%s is not a cycle", KeyCycle)
	}
	return c, nil
}
