package middleware_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/registrar/pkg/middleware"
)

func TestApplyOrder(t *testing.T) {
	var trail []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw := middleware.New()
	mw.Use(tag("cors"))
	mw.Use(tag("logger"))
	h := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trail = append(trail, "recommend")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/recommend", nil))

	if got := strings.Join(trail, ","); got != "cors,logger,recommend" {
		t.Errorf("order = %s, want cors,logger,recommend", got)
	}
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"https://planner.example.edu"},
		AllowCredentials: true,
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}

	var reached bool
	h := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	tests := []struct {
		name        string
		method      string
		origin      string
		wantOrigin  string
		wantStatus  int
		wantReached bool
	}{
		{"allowed", "POST", "https://planner.example.edu", "https://planner.example.edu", 200, true},
		{"denied", "POST", "https://elsewhere.example.com", "", 200, true},
		{"preflight", "OPTIONS", "https://planner.example.edu", "https://planner.example.edu", 204, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(tt.method, "/recommend", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin = %q, want %q", got, tt.wantOrigin)
			}
			if rec.Code != tt.wantStatus || reached != tt.wantReached {
				t.Errorf("status %d reached %v, want %d %v", rec.Code, reached, tt.wantStatus, tt.wantReached)
			}
			if tt.wantOrigin != "" {
				if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
					t.Error("credentials header missing")
				}
				if rec.Header().Get("Access-Control-Max-Age") != "3600" {
					t.Errorf("max-age = %q", rec.Header().Get("Access-Control-Max-Age"))
				}
			}
		})
	}
}

func TestCORSDisabledPassesThrough(t *testing.T) {
	h := middleware.CORS(&middleware.CORSConfig{Origins: []string{"https://planner.example.edu"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }),
	)

	req := httptest.NewRequest("OPTIONS", "/courses", nil)
	req.Header.Set("Origin", "https://planner.example.edu")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("disabled CORS altered the response: %d %v", rec.Code, rec.Header())
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusUnprocessableEntity, "level=WARN"},
		{http.StatusBadGateway, "level=ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		h := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte("{}"))
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/sessions?page=2", nil))

		line := buf.String()
		for _, want := range []string{tt.level, fmt.Sprintf("status=%d", tt.status), "bytes=2", "uri=\"/sessions?page=2\""} {
			if !strings.Contains(line, want) {
				t.Errorf("log %q missing %q", line, want)
			}
		}
	}
}

func TestLoggerImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	h := middleware.Logger(slog.New(slog.NewTextHandler(&buf, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("log %q missing status=200", buf.String())
	}
}

func TestCORSConfigEnv(t *testing.T) {
	t.Setenv("RG_CORS_ENABLED", "true")
	t.Setenv("RG_CORS_ORIGINS", " https://a.example.edu, ,https://b.example.edu ")
	t.Setenv("RG_CORS_MAX_AGE", "600")

	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "RG_CORS_ENABLED",
		Origins: "RG_CORS_ORIGINS",
		MaxAge:  "RG_CORS_MAX_AGE",
	}); err != nil {
		t.Fatal(err)
	}

	if !cfg.Enabled || cfg.MaxAge != 600 {
		t.Errorf("enabled %v max_age %d", cfg.Enabled, cfg.MaxAge)
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "https://b.example.edu" {
		t.Errorf("origins = %v", cfg.Origins)
	}
	if len(cfg.AllowedMethods) != 5 || len(cfg.AllowedHeaders) != 2 {
		t.Errorf("defaults missing: %v %v", cfg.AllowedMethods, cfg.AllowedHeaders)
	}
}

func TestCORSConfigMerge(t *testing.T) {
	base := middleware.CORSConfig{Origins: []string{"https://a.example.edu"}, AllowedMethods: []string{"GET"}, MaxAge: 3600}
	base.Merge(&middleware.CORSConfig{Enabled: true, MaxAge: 60})

	if !base.Enabled || base.MaxAge != 60 {
		t.Errorf("overlay not applied: %+v", base)
	}
	if len(base.Origins) != 1 || len(base.AllowedMethods) != 1 {
		t.Errorf("nil overlay lists replaced base: %+v", base)
	}
}
