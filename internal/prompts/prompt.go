// Package prompts stores named instruction overrides for the model-backed
// stages of the advising workflow and serves the built-in defaults when no
// override is active.
package prompts

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// maxInstructions caps override length in characters.
const maxInstructions = 16000

type Prompt struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Stage        Stage     `json:"stage"`
	Instructions string    `json:"instructions"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
}

// Command is the body of create and update requests.
type Command struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// Validate trims the name and rejects commands the repository would store
// but the workflow could not use.
func (c *Command) Validate() error {
	c.Name = strings.TrimSpace(c.Name)

	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name required", ErrInvalid)
	case c.Stage == "":
		return fmt.Errorf("%w: stage required", ErrInvalid)
	case strings.TrimSpace(c.Instructions) == "":
		return fmt.Errorf("%w: instructions required", ErrInvalid)
	case utf8.RuneCountInString(c.Instructions) > maxInstructions:
		return fmt.Errorf("%w: instructions exceed %d characters", ErrInvalid, maxInstructions)
	}
	return nil
}
