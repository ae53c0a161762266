package workflow_test

import (
	"context"
	"strings"
	"testing"

	"github.com/JaimeStill/registrar/internal/prompts"
	"github.com/JaimeStill/registrar/internal/workflow"
)

func TestComposePrompt(t *testing.T) {
	ctx := context.Background()
	mock := &mockPrompts{}

	t.Run("nil payload produces instructions and spec", func(t *testing.T) {
		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageClassify, nil)
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		if got != "classify instructions\n\nclassify spec" {
			t.Errorf("prompt = %q", got)
		}
	})

	t.Run("string payload is appended verbatim", func(t *testing.T) {
		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageRespond, "What time is it?")
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		if !strings.HasSuffix(got, "Input:\n\nWhat time is it?") {
			t.Errorf("prompt = %q, want verbatim input suffix", got)
		}
	})

	t.Run("struct payload is serialized", func(t *testing.T) {
		payload := workflow.ExtractedRequest{
			TakenCourses: []string{"CS 61A"},
			Interests:    []string{"ai"},
		}

		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageEnrich, payload)
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		if !strings.Contains(got, `"taken_courses": [`) {
			t.Errorf("prompt missing serialized payload: %q", got)
		}
	})

	t.Run("prompt structure is instructions then spec then input", func(t *testing.T) {
		got, err := workflow.ComposePrompt(ctx, mock, prompts.StageRevise, "drop CS 189")
		if err != nil {
			t.Fatalf("ComposePrompt error: %v", err)
		}

		instrIdx := strings.Index(got, "revise instructions")
		specIdx := strings.Index(got, "revise spec")
		inputIdx := strings.Index(got, "drop CS 189")

		if instrIdx >= specIdx || specIdx >= inputIdx {
			t.Errorf("unexpected section order in %q", got)
		}
	})

	t.Run("invalid stage returns error", func(t *testing.T) {
		if _, err := workflow.ComposePrompt(ctx, mock, "banana", nil); err == nil {
			t.Error("expected error for invalid stage")
		}
	})
}
