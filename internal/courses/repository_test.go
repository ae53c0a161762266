package courses_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/pkg/pagination"
	"github.com/JaimeStill/registrar/pkg/query"
)

const catalogJSON = `[
	{"class_id": 1, "course_code": "CS 61A", "title": "Structure and Interpretation of Computer Programs", "description": "Intro programming.", "grade": "B+", "class_times": ["MWF 9:00-10:00am"], "enrolled": 95, "max_enroll": 100},
	{"class_id": 2, "course_code": "CS 188", "title": "Introduction to Artificial Intelligence", "description": "Search, games, learning.", "class_times": ["TuTh 2-3:30pm"], "enrolled": 75, "max_enroll": 100, "workload": "High"},
	{"class_id": 3, "course_code": "DATA C100", "title": "Principles of Data Science", "description": "Data wrangling and machine learning.", "grade": "A-", "enrolled": 100, "max_enroll": 100, "workload": "bogus"}
]`

type memSource struct {
	data string
	err  error
}

func (s memSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.data)), nil
}

func (s memSource) String() string { return "memory" }

var testPagination = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func newCatalog(src courses.Source, maxSize int64) courses.System {
	return courses.New(src, maxSize, slog.New(slog.NewTextHandler(io.Discard, nil)), testPagination)
}

func TestLoad(t *testing.T) {
	sys := newCatalog(memSource{data: catalogJSON}, 1<<20)

	catalog, err := sys.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(catalog) != 3 {
		t.Fatalf("got %d courses, want 3", len(catalog))
	}

	if catalog[1].Grade != courses.GradeUnknown {
		t.Errorf("missing grade = %q, want %q", catalog[1].Grade, courses.GradeUnknown)
	}
	if catalog[2].ClassTimes == nil || len(catalog[2].ClassTimes) != 0 {
		t.Errorf("missing class_times = %v, want empty slice", catalog[2].ClassTimes)
	}
	if catalog[1].Workload != courses.WorkloadHigh {
		t.Errorf("workload hint = %q, want high", catalog[1].Workload)
	}
	if catalog[2].Workload != "" {
		t.Errorf("invalid workload hint = %q, want dropped", catalog[2].Workload)
	}
	if catalog[0].Grade != "B+" {
		t.Errorf("grade = %q, want verbatim B+", catalog[0].Grade)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     courses.Source
		maxSize int64
	}{
		{"open failure", memSource{err: errors.New("connection refused")}, 1 << 20},
		{"malformed json", memSource{data: `[{"class_id": 1,`}, 1 << 20},
		{"missing code", memSource{data: `[{"class_id":1}]`}, 1 << 20},
		{"oversize", memSource{data: catalogJSON}, 64},
		{"missing file", courses.FileSource(filepath.Join(t.TempDir(), "nope.json")), 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCatalog(tt.src, tt.maxSize).Load(context.Background())
			if !errors.Is(err, courses.ErrCatalogUnavailable) {
				t.Errorf("err = %v, want ErrCatalogUnavailable", err)
			}
		})
	}
}

func TestLoadSkipsDuplicateIDs(t *testing.T) {
	data := `[
		{"class_id": 1, "course_code": "A 1"},
		{"class_id": 2, "course_code": "B 2"},
		{"class_id": 1, "course_code": "C 3"}
	]`

	catalog, err := newCatalog(memSource{data: data}, 1<<20).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(catalog) != 2 {
		t.Fatalf("got %d courses, want 2", len(catalog))
	}
	if catalog[0].ID != 1 || catalog[0].Code != "A 1" {
		t.Errorf("first course = %d %q, want 1 \"A 1\"", catalog[0].ID, catalog[0].Code)
	}
	if catalog[1].ID != 2 {
		t.Errorf("second course id = %d, want 2", catalog[1].ID)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, err := newCatalog(courses.FileSource(path), 1<<20).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(catalog) != 3 {
		t.Errorf("got %d courses, want 3", len(catalog))
	}
}

func TestList(t *testing.T) {
	sys := newCatalog(memSource{data: catalogJSON}, 1<<20)
	ctx := context.Background()

	str := func(s string) *string { return &s }
	boolean := func(b bool) *bool { return &b }

	tests := []struct {
		name    string
		page    pagination.PageRequest
		filters courses.Filters
		want    []int
	}{
		{"default sort by code", pagination.PageRequest{}, courses.Filters{}, []int{2, 1, 3}},
		{"search description", pagination.PageRequest{Search: str("learning")}, courses.Filters{}, []int{2, 3}},
		{"code filter with alias", pagination.PageRequest{}, courses.Filters{Code: str("compsci")}, []int{2, 1}},
		{"open seats only", pagination.PageRequest{}, courses.Filters{Open: boolean(true)}, []int{2, 1}},
		{
			"sort by enrolled descending",
			pagination.PageRequest{Sort: []query.SortField{{Field: "enrolled", Descending: true}}},
			courses.Filters{},
			[]int{3, 1, 2},
		},
		{"second page", pagination.PageRequest{Page: 2, PageSize: 2}, courses.Filters{}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := sys.List(ctx, tt.page, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}

			if len(result.Data) != len(tt.want) {
				t.Fatalf("got %d courses, want %d", len(result.Data), len(tt.want))
			}
			for i, id := range tt.want {
				if result.Data[i].ID != id {
					t.Errorf("Data[%d].ID = %d, want %d", i, result.Data[i].ID, id)
				}
			}
		})
	}
}

func TestFind(t *testing.T) {
	sys := newCatalog(memSource{data: catalogJSON}, 1<<20)

	c, err := sys.Find(context.Background(), 2)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if c.Code != "CS 188" {
		t.Errorf("Code = %q, want CS 188", c.Code)
	}

	if _, err := sys.Find(context.Background(), 42); !errors.Is(err, courses.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
