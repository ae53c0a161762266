package workflow_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/workflow"
)

func courseID(c courses.Course) int { return c.ID }

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		taken    []string
		excluded []int
	}{
		{"nothing taken", nil, nil},
		{"exact code without space", []string{"CS61A"}, []int{1}},
		{"code with department alias", []string{"COMPSCI 61A"}, []int{1}},
		{"lowercase code", []string{"cs 188"}, []int{2}},
		{"number suffix", []string{"61A"}, []int{1}},
		{"code inside sentence", []string{"took CS 170 last fall"}, []int{6}},
		{"several codes in one entry", []string{"CS 189, EECS 126"}, []int{3, 7}},
		{"class id token", []string{"8"}, []int{8}},
		{"partial number does not match", []string{"1A"}, nil},
		{"code contained in entry", []string{"CS61Afall"}, []int{1}},
		{"code contained in longer code", []string{"CS 1880"}, []int{2}},
		{"class id after punctuation", []string{"id:9"}, []int{9}},
		{"department without number", []string{"CS"}, nil},
		{"unrelated entry", []string{"Linear Algebra"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testCatalog()
			got := workflow.Filter(catalog, tt.taken)

			want := make([]int, 0, len(catalog))
			for _, c := range catalog {
				if !slices.Contains(tt.excluded, c.ID) {
					want = append(want, c.ID)
				}
			}

			if gotIDs := ids(got, courseID); !slices.Equal(gotIDs, want) {
				t.Errorf("Filter(%v) = %v, want %v", tt.taken, gotIDs, want)
			}
		})
	}
}

func TestFilterDoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog, courseID)

	workflow.Filter(catalog, []string{"CS 61A", "CS 188"})

	if after := ids(catalog, courseID); !slices.Equal(before, after) {
		t.Errorf("catalog changed: %v -> %v", before, after)
	}
}

func TestFilterCodeSubstringOfTaken(t *testing.T) {
	catalog := []courses.Course{
		{ID: 10, Code: "CS 61"},
		{ID: 11, Code: "CS 61A"},
		{ID: 12, Code: "EE 16A"},
	}

	tests := []struct {
		name  string
		taken []string
		want  []int
	}{
		{"shorter code inside entry", []string{"CS 61A"}, []int{12}},
		{"code followed by text", []string{"CS61Afall"}, []int{12}},
		{"class id with prefix", []string{"id:12"}, []int{10, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(workflow.Filter(catalog, tt.taken), courseID)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%v) = %v, want %v", tt.taken, got, tt.want)
			}
		})
	}
}
