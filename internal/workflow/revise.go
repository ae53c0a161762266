package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/prompts"
)

type reviseCandidate struct {
	CourseID       int              `json:"course_id"`
	CourseCode     string           `json:"course_code"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	AlignmentScore float64          `json:"alignment_score"`
	Workload       courses.Workload `json:"workload"`
	ClassTimes     []string         `json:"class_times"`
}

type revisePayload struct {
	Message         string                   `json:"message"`
	Recommendations []courses.Recommendation `json:"recommendations"`
	Target          string                   `json:"target_course_code,omitempty"`
	Eligible        []reviseCandidate        `json:"eligible"`
}

type reviseResponse struct {
	TargetCourseCode    string `json:"target_course_code"`
	ReplacementCourseID *int   `json:"replacement_course_id"`
	Reason              string `json:"reason"`
}

// Revise replaces exactly one recommendation from prior in response to a
// complaint. The target is resolved from the message when it names exactly
// one recommendation, otherwise from the model's choice. The replacement
// must be a matched course that is not already recommended and does not
// conflict with the three kept recommendations.
func Revise(ctx context.Context, rt *Runtime, message string, prior *Prior) ([]courses.Recommendation, *Revision, error) {
	if prior == nil || len(prior.Recommendations) == 0 {
		return nil, nil, ErrNoPriorSession
	}
	recs := prior.Recommendations

	target := -1
	if hits := mentionedTargets(message, recs); len(hits) == 1 {
		target = hits[0]
	}

	payload := revisePayload{
		Message:         message,
		Recommendations: recs,
	}

	if target >= 0 {
		eligible := eligibleReplacements(prior, target)
		if len(eligible) == 0 {
			return nil, nil, fmt.Errorf("%w: no replacement for %s", ErrInsufficientCandidates, recs[target].CourseCode)
		}
		payload.Target = recs[target].CourseCode
		payload.Eligible = candidates(eligible)
	} else {
		payload.Eligible = candidates(unrecommended(prior))
	}

	resp, err := invoke[reviseResponse](ctx, rt, prompts.StageRevise, payload)
	if err != nil {
		return nil, nil, err
	}

	if target < 0 {
		hits := namedTargets(resp.TargetCourseCode, recs)
		if len(hits) != 1 {
			return nil, nil, fmt.Errorf("%w: %q", ErrAmbiguousRevisionTarget, resp.TargetCourseCode)
		}
		target = hits[0]
	}

	eligible := eligibleReplacements(prior, target)
	if len(eligible) == 0 {
		return nil, nil, fmt.Errorf("%w: no replacement for %s", ErrInsufficientCandidates, recs[target].CourseCode)
	}

	if resp.ReplacementCourseID == nil {
		return nil, nil, fmt.Errorf("%w: revise: missing replacement_course_id", ErrDownstreamParse)
	}

	i := slices.IndexFunc(eligible, func(e courses.EnrichedCourse) bool {
		return e.ID == *resp.ReplacementCourseID
	})
	if i < 0 {
		return nil, nil, fmt.Errorf(
			"%w: revise: course_id %d is not an eligible replacement",
			ErrDownstreamParse, *resp.ReplacementCourseID,
		)
	}

	added := courses.NewRecommendation(eligible[i], strings.TrimSpace(resp.Reason))

	updated := slices.Clone(recs)
	updated[target] = added

	return updated, &Revision{
		Index:   target,
		Removed: recs[target],
		Added:   added,
		Reason:  added.Reason,
	}, nil
}

// mentionedTargets returns the recommendations whose code or title appears
// in the complaint.
func mentionedTargets(message string, recs []courses.Recommendation) []int {
	keys := codeKeys(message)
	lower := strings.ToLower(message)

	var hits []int
	for i, r := range recs {
		_, byCode := keys[courses.CodeKey(r.CourseCode)]
		title := strings.ToLower(strings.TrimSpace(r.Title))
		if byCode || (title != "" && strings.Contains(lower, title)) {
			hits = append(hits, i)
		}
	}
	return hits
}

// namedTargets returns the recommendations identified by a model-supplied
// code or title.
func namedTargets(name string, recs []courses.Recommendation) []int {
	key := courses.CodeKey(name)
	title := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil
	}

	var hits []int
	for i, r := range recs {
		if courses.CodeKey(r.CourseCode) == key || strings.ToLower(strings.TrimSpace(r.Title)) == title {
			hits = append(hits, i)
		}
	}
	return hits
}

func unrecommended(prior *Prior) []courses.EnrichedCourse {
	out := make([]courses.EnrichedCourse, 0, len(prior.Matched))
	for _, m := range prior.Matched {
		if !slices.ContainsFunc(prior.Recommendations, func(r courses.Recommendation) bool {
			return r.CourseID == m.ID
		}) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, compareEnriched)
	return out
}

func eligibleReplacements(prior *Prior, target int) []courses.EnrichedCourse {
	var out []courses.EnrichedCourse
	for _, m := range unrecommended(prior) {
		conflict := false
		for j, r := range prior.Recommendations {
			if j != target && courses.SlotsOverlap(m.ClassTimes, r.ClassTimes) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, m)
		}
	}
	return out
}

func candidates(list []courses.EnrichedCourse) []reviseCandidate {
	out := make([]reviseCandidate, len(list))
	for i, e := range list {
		out[i] = reviseCandidate{
			CourseID:       e.ID,
			CourseCode:     e.Code,
			Title:          e.Title,
			Description:    e.Description,
			AlignmentScore: e.AlignmentScore,
			Workload:       e.Tier,
			ClassTimes:     e.ClassTimes,
		}
	}
	return out
}
