package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/registrar/internal/prompts"
	"github.com/JaimeStill/registrar/pkg/formatting"
)

// ComposePrompt builds a prompt by combining tunable instructions, immutable
// specifications, and the stage input. A string payload is appended verbatim;
// anything else is serialized as indented JSON. A nil payload is omitted.
func ComposePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
	payload any,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	switch p := payload.(type) {
	case nil:
	case string:
		sb.WriteString("\n\nInput:\n\n")
		sb.WriteString(p)
	default:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return "", fmt.Errorf("serialize %s input: %w", stage, err)
		}
		sb.WriteString("\n\nInput:\n\n")
		sb.Write(data)
	}

	return sb.String(), nil
}

func complete(ctx context.Context, rt *Runtime, stage prompts.Stage, payload any) (string, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, stage, payload)
	if err != nil {
		return "", err
	}

	content, err := rt.Completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrGenerationFailed, stage, err)
	}
	return content, nil
}

// invoke runs a text-generation stage and decodes its JSON output into T.
func invoke[T any](ctx context.Context, rt *Runtime, stage prompts.Stage, payload any) (T, error) {
	var zero T

	content, err := complete(ctx, rt, stage, payload)
	if err != nil {
		return zero, err
	}

	parsed, err := formatting.Parse[T](content)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %w", ErrDownstreamParse, stage, err)
	}
	return parsed, nil
}
