package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/registrar/internal/prompts"
)

// Extract pulls taken courses and interests out of a new-plan request.
// Both fields must be present in the model output; a JSON null counts as an
// empty list.
func Extract(ctx context.Context, rt *Runtime, message string) (ExtractedRequest, error) {
	resp, err := invoke[map[string]json.RawMessage](ctx, rt, prompts.StageExtract, message)
	if err != nil {
		return ExtractedRequest{}, err
	}

	taken, err := requiredList(resp, "taken_courses")
	if err != nil {
		return ExtractedRequest{}, err
	}

	interests, err := requiredList(resp, "interests")
	if err != nil {
		return ExtractedRequest{}, err
	}

	return ExtractedRequest{
		TakenCourses: cleanList(taken),
		Interests:    cleanList(interests),
	}, nil
}

func requiredList(fields map[string]json.RawMessage, name string) ([]string, error) {
	raw, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: extract: missing %s", ErrDownstreamParse, name)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: extract: %s: %w", ErrDownstreamParse, name, err)
	}
	return list, nil
}

// cleanList trims entries, drops empties, and removes case-insensitive
// duplicates while keeping first occurrences.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
