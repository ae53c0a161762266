package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/registrar/internal/prompts"
	"github.com/JaimeStill/registrar/pkg/formatting"
)

type classifyResponse struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Classify decides which branch handles message. Output that cannot be
// decoded or names an unknown label fails closed with ErrUnrecognizedCategory.
func Classify(ctx context.Context, rt *Runtime, message string) (Classification, error) {
	content, err := complete(ctx, rt, prompts.StageClassify, message)
	if err != nil {
		return Classification{}, err
	}

	resp, err := formatting.Parse[classifyResponse](content)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %w", ErrUnrecognizedCategory, err)
	}

	category, err := ParseCategory(resp.Category)
	if err != nil {
		return Classification{}, err
	}

	return Classification{
		Category: category,
		Reason:   strings.TrimSpace(resp.Reason),
	}, nil
}
