package sessions_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/sessions"
	"github.com/JaimeStill/registrar/pkg/pagination"
	"github.com/JaimeStill/registrar/pkg/routes"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters sessions.Filters) (*pagination.PageResult[sessions.Session], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*sessions.Session, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *sessions.Handler {
	return sessions.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters sessions.Filters) (*pagination.PageResult[sessions.Session], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*sessions.Session, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) SavePlan(context.Context, uuid.UUID, sessions.PlanCommand) (*sessions.Session, error) {
	return nil, nil
}

func (m *mockSystem) SaveRevision(context.Context, uuid.UUID, []courses.Recommendation) (*sessions.Session, error) {
	return nil, nil
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

var sessionID = uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")

func TestHandlerList(t *testing.T) {
	var captured sessions.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, f sessions.Filters) (*pagination.PageResult[sessions.Session], error) {
			captured = f
			result := pagination.NewPageResult([]sessions.Session{{ID: sessionID}}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	rec := httptest.NewRecorder()
	mux := setupMux(sys)
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/sessions?request=ai&min_revisions=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[sessions.Session]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].ID != sessionID {
		t.Errorf("data = %+v", result.Data)
	}
	if captured.Request == nil || *captured.Request != "ai" {
		t.Errorf("request filter = %v", captured.Request)
	}
	if captured.MinRevisions == nil || *captured.MinRevisions != 1 {
		t.Errorf("min_revisions filter = %v", captured.MinRevisions)
	}
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*sessions.Session, error) {
			if id != sessionID {
				return nil, sessions.ErrNotFound
			}
			return &sessions.Session{ID: id, Request: "ai"}, nil
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"found", "/sessions/" + sessionID.String(), http.StatusOK},
		{"not found", "/sessions/" + uuid.NewString(), http.StatusNotFound},
		{"invalid id", "/sessions/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerDelete(t *testing.T) {
	var deleted uuid.UUID
	sys := &mockSystem{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id != sessionID {
				return sessions.ErrNotFound
			}
			deleted = id
			return nil
		},
	}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/sessions/"+sessionID.String(), nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if deleted != sessionID {
		t.Errorf("deleted = %v, want %v", deleted, sessionID)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/sessions/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", rec.Code)
	}
}
