package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Completer sends a composed prompt to a text-generation service and
// returns the raw completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var errEmptyCompletion = errors.New("empty completion")

type agentCompleter struct {
	cfg gaconfig.AgentConfig
}

// NewAgentCompleter returns a Completer backed by a go-agents chat agent.
// An agent is created per call so concurrent stages never share one.
func NewAgentCompleter(cfg gaconfig.AgentConfig) Completer {
	return &agentCompleter{cfg: cfg}
}

func (c *agentCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	content := resp.Content()
	if strings.TrimSpace(content) == "" {
		return "", errEmptyCompletion
	}
	return content, nil
}
