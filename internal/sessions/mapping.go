package sessions

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/registrar/pkg/query"
	"github.com/JaimeStill/registrar/pkg/repository"
)

const columns = "id, request, matched, recommendations, revisions, created_at, updated_at"

var projection = query.
	NewProjectionMap("public", "sessions", "s").
	Project("id", "ID").
	Project("request", "Request").
	Project("matched", "Matched").
	Project("recommendations", "Recommendations").
	Project("revisions", "Revisions").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for session queries.
// Request uses case-insensitive contains matching. Since and MinRevisions
// are inclusive lower bounds.
type Filters struct {
	Request      *string    `json:"request,omitempty"`
	Since        *time.Time `json:"since,omitempty"`
	MinRevisions *int       `json:"min_revisions,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Request", f.Request).
		WhereAtLeast("UpdatedAt", f.Since).
		WhereAtLeast("Revisions", f.MinRevisions)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Malformed values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if r := values.Get("request"); r != "" {
		f.Request = &r
	}

	if s := values.Get("since"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			f.Since = &t
		}
	}

	if m := values.Get("min_revisions"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			f.MinRevisions = &v
		}
	}

	return f
}

func scanSession(s repository.Scanner) (Session, error) {
	var (
		sess            Session
		matched         []byte
		recommendations []byte
	)

	err := s.Scan(
		&sess.ID,
		&sess.Request,
		&matched,
		&recommendations,
		&sess.Revisions,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if err != nil {
		return Session{}, err
	}

	if err := json.Unmarshal(matched, &sess.Matched); err != nil {
		return Session{}, fmt.Errorf("decode matched: %w", err)
	}
	if err := json.Unmarshal(recommendations, &sess.Recommendations); err != nil {
		return Session{}, fmt.Errorf("decode recommendations: %w", err)
	}

	return sess, nil
}
