package prompts

import "encoding/json"

// Stage names a model-backed workflow step whose instructions can be
// overridden. Filtering, matching and selection run without a model and
// have no stage.
type Stage string

const (
	StageClassify Stage = "classify"
	StageExtract  Stage = "extract"
	StageEnrich   Stage = "enrich"
	StageRevise   Stage = "revise"
	StageRespond  Stage = "respond"
)

type defaults struct {
	instructions string
	spec         string
}

var (
	stages = []Stage{StageClassify, StageExtract, StageEnrich, StageRevise, StageRespond}

	builtin = map[Stage]defaults{
		StageClassify: {classifyInstructions, classifySpec},
		StageExtract:  {extractInstructions, extractSpec},
		StageEnrich:   {enrichInstructions, enrichSpec},
		StageRevise:   {reviseInstructions, reviseSpec},
		StageRespond:  {respondInstructions, respondSpec},
	}
)

// Stages lists the overridable stages in pipeline order.
func Stages() []Stage {
	return stages
}

func ParseStage(s string) (Stage, error) {
	if _, ok := builtin[Stage(s)]; !ok {
		return "", ErrInvalidStage
	}
	return Stage(s), nil
}

func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Instructions returns the built-in instructions for stage.
func Instructions(stage Stage) (string, error) {
	d, ok := builtin[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return d.instructions, nil
}

// Spec returns the output contract for stage. Unlike instructions it cannot
// be overridden, since the workflow parses replies against it.
func Spec(stage Stage) (string, error) {
	d, ok := builtin[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return d.spec, nil
}
