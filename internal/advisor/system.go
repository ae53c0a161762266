package advisor

import "context"

// System defines the public contract for the recommend operation.
type System interface {
	Handler() *Handler

	// Recommend classifies and answers message. New plans overwrite the
	// session state; follow-ups revise it; general queries leave it untouched.
	// Requests on the same session are serialized.
	Recommend(ctx context.Context, req Request) (*Response, error)
}
