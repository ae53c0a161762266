package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/registrar/pkg/module"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestNewRejectsBadPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, http.NotFoundHandler())
		})
	}

	if m := module.New("/api", http.NotFoundHandler()); m.Prefix() != "/api" {
		t.Errorf("Prefix = %q", m.Prefix())
	}
}

func TestRouter(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(echoPath))

	var stamped bool
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stamped = true
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(m)
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("native"))
	})

	tests := []struct {
		path    string
		body    string
		stamped bool
	}{
		{"/api/sessions/42", "/sessions/42", true},
		{"/api/recommend/", "/recommend", true},
		{"/api", "/", true},
		{"/healthz", "native", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stamped = false
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
			if stamped != tt.stamped {
				t.Errorf("module middleware ran = %v, want %v", stamped, tt.stamped)
			}
		})
	}
}

func TestRouterUnknownPrefix(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", http.HandlerFunc(echoPath)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/catalog/courses", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
