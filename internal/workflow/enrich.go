package workflow

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/prompts"
)

// DefaultHighWorkload lists courses always treated as high workload.
var DefaultHighWorkload = []string{"CS 189", "CS 162", "EECS 126", "CS 179", "CS 182"}

type enrichCourse struct {
	CourseID       int     `json:"course_id"`
	CourseCode     string  `json:"course_code"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Grade          string  `json:"grade"`
	AlignmentScore float64 `json:"alignment_score"`
}

type enrichPayload struct {
	HighWorkload []string       `json:"high_workload"`
	Courses      []enrichCourse `json:"courses"`
}

type enrichItem struct {
	CourseID int    `json:"course_id"`
	Workload string `json:"workload"`
	Comments string `json:"comments"`
}

// Enrich annotates scored courses with workload tier, grade summary, and
// commentary. Output order and cardinality match the input. Batches are
// sent concurrently; an empty input makes no calls.
func Enrich(ctx context.Context, rt *Runtime, scored []courses.ScoredCourse) ([]courses.EnrichedCourse, error) {
	out := make([]courses.EnrichedCourse, len(scored))
	if len(scored) == 0 {
		return out, nil
	}

	high := rt.Settings.HighWorkload
	if high == nil {
		high = DefaultHighWorkload
	}
	override := make(map[string]struct{}, len(high))
	for _, code := range high {
		override[courses.CodeKey(code)] = struct{}{}
	}

	size := rt.enrichBatchSize(len(scored))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.enrichConcurrency())

	for start := 0; start < len(scored); start += size {
		end := min(start+size, len(scored))
		batch := scored[start:end]

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			items, err := enrichBatch(gctx, rt, high, batch)
			if err != nil {
				return err
			}

			for i, sc := range batch {
				out[start+i] = enrichCourseWith(sc, items[i], override)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// enrichBatch returns one validated item per course, aligned to batch order.
func enrichBatch(
	ctx context.Context,
	rt *Runtime,
	high []string,
	batch []courses.ScoredCourse,
) ([]enrichItem, error) {
	payload := enrichPayload{
		HighWorkload: high,
		Courses:      make([]enrichCourse, len(batch)),
	}

	index := make(map[int]int, len(batch))
	for i, sc := range batch {
		index[sc.ID] = i
		payload.Courses[i] = enrichCourse{
			CourseID:       sc.ID,
			CourseCode:     sc.Code,
			Title:          sc.Title,
			Description:    sc.Description,
			Grade:          sc.GradeLabel(),
			AlignmentScore: sc.AlignmentScore,
		}
	}

	items, err := invoke[[]enrichItem](ctx, rt, prompts.StageEnrich, payload)
	if err != nil {
		return nil, err
	}

	aligned := make([]enrichItem, len(batch))
	seen := make([]bool, len(batch))

	for _, item := range items {
		i, ok := index[item.CourseID]
		if !ok {
			return nil, fmt.Errorf("%w: enrich: unknown course_id %d", ErrDownstreamParse, item.CourseID)
		}
		if seen[i] {
			return nil, fmt.Errorf("%w: enrich: duplicate course_id %d", ErrDownstreamParse, item.CourseID)
		}
		if w := strings.TrimSpace(item.Workload); w != "" {
			if _, ok := courses.ParseWorkload(w); !ok {
				return nil, fmt.Errorf("%w: enrich: invalid workload %q for course_id %d", ErrDownstreamParse, w, item.CourseID)
			}
		}
		seen[i] = true
		aligned[i] = item
	}

	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: enrich: missing course_id %d", ErrDownstreamParse, batch[i].ID)
		}
	}

	return aligned, nil
}

func enrichCourseWith(sc courses.ScoredCourse, item enrichItem, override map[string]struct{}) courses.EnrichedCourse {
	return courses.EnrichedCourse{
		ScoredCourse: sc,
		AverageGrade: sc.GradeLabel(),
		Tier:         workloadTier(sc.Course, item.Workload, override),
		Commentary:   strings.TrimSpace(item.Comments),
	}
}

// workloadTier applies precedence: override list, catalog hint, model tier,
// then medium.
func workloadTier(c courses.Course, model string, override map[string]struct{}) courses.Workload {
	if _, ok := override[courses.CodeKey(c.Code)]; ok {
		return courses.WorkloadHigh
	}
	if w, ok := courses.ParseWorkload(string(c.Workload)); ok {
		return w
	}
	if w, ok := courses.ParseWorkload(model); ok {
		return w
	}
	return courses.WorkloadMedium
}
