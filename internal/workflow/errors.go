// Package workflow implements the course-advising workflow for Registrar.
// A request is classified, then routed through one of three branches of a
// state graph: the new-plan pipeline (extract → filter → match → enrich →
// select), the revision of a prior plan, or a direct conversational answer.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrDownstreamParse         = errors.New("downstream output could not be parsed")
	ErrGenerationFailed        = errors.New("text generation failed")
	ErrUnrecognizedCategory    = errors.New("unrecognized request category")
	ErrNoPriorSession          = errors.New("no prior recommendations for session")
	ErrAmbiguousRevisionTarget = errors.New("revision target could not be resolved to exactly one course")
	ErrInsufficientCandidates  = errors.New("not enough non-conflicting courses")
)
