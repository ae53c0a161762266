package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/registrar/internal/prompts"
)

// Respond answers a general query in free text.
func Respond(ctx context.Context, rt *Runtime, message string) (string, error) {
	content, err := complete(ctx, rt, prompts.StageRespond, message)
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(content)
	if answer == "" {
		return "", fmt.Errorf("%w: respond: empty answer", ErrDownstreamParse)
	}
	return answer, nil
}
