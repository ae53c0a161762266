package workflow_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/prompts"
	"github.com/JaimeStill/registrar/internal/workflow"
)

// priorPlan runs the deterministic half of a new-plan cycle over the test
// catalog: recommendations are CS 188, CS 189, CS 182, CS 285 and the
// unrecommended matches are DATA C100 and EECS 126.
func priorPlan(t *testing.T) *workflow.Prior {
	t.Helper()

	rt := newRuntime(newScripted(map[prompts.Stage]reply{
		prompts.StageEnrich: enrichAll("medium"),
	}))

	enriched, err := workflow.Enrich(context.Background(), rt, matched())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	recs, err := workflow.Select(enriched)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if got := recIDs(recs); !slices.Equal(got, []int{2, 3, 5, 9}) {
		t.Fatalf("prior plan = %v, want [2 3 5 9]", got)
	}

	return &workflow.Prior{Matched: enriched, Recommendations: recs}
}

func TestRevise(t *testing.T) {
	prior := priorPlan(t)

	var sentPrompt string
	rt := newRuntime(newScripted(map[prompts.Stage]reply{
		prompts.StageRevise: func(prompt string) (string, error) {
			sentPrompt = prompt
			return `{"target_course_code":"CS 189","replacement_course_id":4,"reason":"Lighter, data-focused option."}`, nil
		},
	}))

	recs, rev, err := workflow.Revise(context.Background(), rt, "I don't want CS 189, too much math.", prior)
	if err != nil {
		t.Fatalf("Revise failed: %v", err)
	}

	if got := recIDs(recs); !slices.Equal(got, []int{2, 4, 5, 9}) {
		t.Errorf("revised plan = %v, want [2 4 5 9]", got)
	}

	changed := 0
	for i := range recs {
		if recs[i].CourseID != prior.Recommendations[i].CourseID {
			changed++
		}
	}
	if changed != 1 {
		t.Errorf("%d positions changed, want 1", changed)
	}

	if rev.Index != 1 || rev.Removed.CourseID != 3 || rev.Added.CourseID != 4 {
		t.Errorf("revision = %+v", rev)
	}
	if rev.Reason != "Lighter, data-focused option." {
		t.Errorf("reason = %q", rev.Reason)
	}

	if !slices.ContainsFunc(prior.Matched, func(e courses.EnrichedCourse) bool { return e.ID == rev.Added.CourseID }) {
		t.Error("replacement not drawn from matched set")
	}

	if !strings.Contains(sentPrompt, `"target_course_code": "CS 189"`) {
		t.Error("resolved target not sent to model")
	}
	if strings.Contains(sentPrompt, "EECS 126") {
		t.Error("conflicting course offered as eligible")
	}
}

func TestReviseModelResolvesTarget(t *testing.T) {
	prior := priorPlan(t)

	rt := newRuntime(newScripted(map[prompts.Stage]reply{
		prompts.StageRevise: fixed(`{"target_course_code":"cs189","replacement_course_id":4,"reason":"r"}`),
	}))

	recs, rev, err := workflow.Revise(context.Background(), rt, "the second one is too hard", prior)
	if err != nil {
		t.Fatalf("Revise failed: %v", err)
	}
	if rev.Index != 1 || recs[1].CourseID != 4 {
		t.Errorf("revision = %+v", rev)
	}
}

func TestReviseErrors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		content string
		wantErr error
	}{
		{
			"unresolvable target",
			"I don't like one of these",
			`{"target_course_code":"MATH 1A","replacement_course_id":4}`,
			workflow.ErrAmbiguousRevisionTarget,
		},
		{
			"ineligible replacement",
			"Drop CS 189 please",
			`{"target_course_code":"CS 189","replacement_course_id":7}`,
			workflow.ErrDownstreamParse,
		},
		{
			"already recommended replacement",
			"Drop CS 189 please",
			`{"target_course_code":"CS 189","replacement_course_id":2}`,
			workflow.ErrDownstreamParse,
		},
		{
			"missing replacement",
			"Drop CS 189 please",
			`{"target_course_code":"CS 189"}`,
			workflow.ErrDownstreamParse,
		},
		{
			"no eligible replacement",
			"Drop Introduction to Machine Learning",
			`{"target_course_code":"CS 189","replacement_course_id":7}`,
			workflow.ErrInsufficientCandidates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prior := priorPlan(t)
			if tt.wantErr == workflow.ErrInsufficientCandidates {
				prior.Matched = slices.DeleteFunc(prior.Matched, func(e courses.EnrichedCourse) bool {
					return e.ID == 4
				})
			}

			rt := newRuntime(newScripted(map[prompts.Stage]reply{
				prompts.StageRevise: fixed(tt.content),
			}))

			_, _, err := workflow.Revise(context.Background(), rt, tt.message, prior)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReviseWithoutPrior(t *testing.T) {
	rt := newRuntime(newScripted(map[prompts.Stage]reply{}))

	for _, prior := range []*workflow.Prior{nil, {}} {
		if _, _, err := workflow.Revise(context.Background(), rt, "drop CS 189", prior); !errors.Is(err, workflow.ErrNoPriorSession) {
			t.Errorf("err = %v, want ErrNoPriorSession", err)
		}
	}
}
