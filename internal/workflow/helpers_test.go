package workflow_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/prompts"
	"github.com/JaimeStill/registrar/internal/workflow"
	"github.com/JaimeStill/registrar/pkg/pagination"
)

type mockPrompts struct{}

func (m *mockPrompts) Handler() *prompts.Handler { return nil }
func (m *mockPrompts) List(context.Context, pagination.PageRequest, prompts.Filters) (*pagination.PageResult[prompts.Prompt], error) {
	return nil, nil
}
func (m *mockPrompts) Find(context.Context, uuid.UUID) (*prompts.Prompt, error) { return nil, nil }
func (m *mockPrompts) Create(context.Context, prompts.Command) (*prompts.Prompt, error) {
	return nil, nil
}
func (m *mockPrompts) Update(context.Context, uuid.UUID, prompts.Command) (*prompts.Prompt, error) {
	return nil, nil
}
func (m *mockPrompts) Delete(context.Context, uuid.UUID) error                       { return nil }
func (m *mockPrompts) Activate(context.Context, uuid.UUID) (*prompts.Prompt, error)   { return nil, nil }
func (m *mockPrompts) Deactivate(context.Context, uuid.UUID) (*prompts.Prompt, error) { return nil, nil }

func (m *mockPrompts) Instructions(_ context.Context, stage prompts.Stage) (string, error) {
	if _, err := prompts.ParseStage(string(stage)); err != nil {
		return "", err
	}
	return string(stage) + " instructions", nil
}

func (m *mockPrompts) Spec(_ context.Context, stage prompts.Stage) (string, error) {
	if _, err := prompts.ParseStage(string(stage)); err != nil {
		return "", err
	}
	return string(stage) + " spec", nil
}

type reply func(prompt string) (string, error)

// scripted answers each stage from its own reply function and counts calls.
type scripted struct {
	mu      sync.Mutex
	replies map[prompts.Stage]reply
	calls   map[prompts.Stage]int
}

func newScripted(replies map[prompts.Stage]reply) *scripted {
	return &scripted{replies: replies, calls: make(map[prompts.Stage]int)}
}

func (s *scripted) Complete(ctx context.Context, prompt string) (string, error) {
	for stage, fn := range s.replies {
		if strings.HasPrefix(prompt, string(stage)+" instructions") {
			s.mu.Lock()
			s.calls[stage]++
			s.mu.Unlock()
			return fn(prompt)
		}
	}
	return "", errors.New("no scripted reply")
}

func (s *scripted) count(stage prompts.Stage) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[stage]
}

func fixed(content string) reply {
	return func(string) (string, error) { return content, nil }
}

func inputOf(prompt string) string {
	_, after, _ := strings.Cut(prompt, "Input:\n\n")
	return after
}

// enrichAll answers every course in the enrich payload with workload.
func enrichAll(workload string) reply {
	return func(prompt string) (string, error) {
		var payload struct {
			Courses []struct {
				CourseID int `json:"course_id"`
			} `json:"courses"`
		}
		if err := json.Unmarshal([]byte(inputOf(prompt)), &payload); err != nil {
			return "", err
		}

		items := make([]map[string]any, len(payload.Courses))
		for i, c := range payload.Courses {
			items[i] = map[string]any{
				"course_id": c.CourseID,
				"workload":  workload,
				"comments":  fmt.Sprintf("Course %d is manageable.", c.CourseID),
			}
		}
		data, err := json.Marshal(items)
		return string(data), err
	}
}

type catalogSystem struct {
	catalog []courses.Course
	err     error
}

func (c *catalogSystem) Handler() *courses.Handler { return nil }
func (c *catalogSystem) Load(context.Context) ([]courses.Course, error) {
	return c.catalog, c.err
}
func (c *catalogSystem) List(context.Context, pagination.PageRequest, courses.Filters) (*pagination.PageResult[courses.Course], error) {
	return nil, nil
}
func (c *catalogSystem) Find(context.Context, int) (*courses.Course, error) { return nil, nil }

func testCatalog() []courses.Course {
	return []courses.Course{
		{ID: 1, Code: "CS 61A", Title: "Structure and Interpretation of Computer Programs", Description: "Programming fundamentals with a glimpse of machine learning.", Grade: "A-", ClassTimes: []string{"MWF9"}, Enrolled: 200, MaxEnroll: 250},
		{ID: 2, Code: "CS 188", Title: "Introduction to Artificial Intelligence", Description: "Search, planning, and machine learning.", Grade: "B+", ClassTimes: []string{"TuTh 2-3:30pm"}, Enrolled: 95, MaxEnroll: 100},
		{ID: 3, Code: "CS 189", Title: "Introduction to Machine Learning", Description: "Theory and practice of machine learning.", Grade: "B", ClassTimes: []string{"MWF 1-2pm"}, Enrolled: 75, MaxEnroll: 100},
		{ID: 4, Code: "DATA C100", Title: "Principles and Techniques of Data Science", Description: "Data wrangling, visualization, and machine learning.", Grade: "A-", ClassTimes: []string{"TuTh 9:30-11am"}, Enrolled: 50, MaxEnroll: 100},
		{ID: 5, Code: "CS 182", Title: "Deep Neural Networks", Description: "Deep learning and machine learning for vision and language.", Grade: "B+", ClassTimes: []string{"MW 5-6:30pm"}, Enrolled: 180, MaxEnroll: 200},
		{ID: 6, Code: "CS 170", Title: "Efficient Algorithms and Intractable Problems", Description: "Graph algorithms and complexity.", Grade: "B", ClassTimes: []string{"MWF 10-11am"}, Enrolled: 300, MaxEnroll: 350},
		{ID: 7, Code: "EECS 126", Title: "Probability and Random Processes", Description: "Probability with applications in machine learning.", Grade: "B-", ClassTimes: []string{"TuTh 2-3:30pm"}, Enrolled: 60, MaxEnroll: 100},
		{ID: 8, Code: "CS 161", Title: "Computer Security", Description: "Cryptography and network security.", Grade: "B", ClassTimes: []string{"TuTh 11-12:30pm"}, Enrolled: 100, MaxEnroll: 120},
		{ID: 9, Code: "CS 285", Title: "Deep Reinforcement Learning", Description: "Reinforcement learning and machine learning for control.", Grade: courses.GradeUnknown, ClassTimes: []string{"F 2-4pm"}, Enrolled: 40, MaxEnroll: 80},
	}
}

var interests = []string{"machine learning", "ai"}

func newRuntime(c workflow.Completer) *workflow.Runtime {
	return &workflow.Runtime{
		Completer: c,
		Courses:   &catalogSystem{catalog: testCatalog()},
		Prompts:   &mockPrompts{},
		Settings: workflow.Settings{
			MatchLimit:        10,
			HighWorkload:      workflow.DefaultHighWorkload,
			EnrichBatchSize:   2,
			EnrichConcurrency: 3,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func ids[T any](items []T, id func(T) int) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

func recIDs(recs []courses.Recommendation) []int {
	return ids(recs, func(r courses.Recommendation) int { return r.CourseID })
}
