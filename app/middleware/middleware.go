package appMiddleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// SessionIDKey is the context key under which the planning session ID is stored.
const SessionIDKey contextKey = "sessionID"

// SessionHeader is the header clients use to pin requests to one planning
// session. A fresh ID is minted and echoed back when the header is absent or
// not a valid UUID, so every request always carries a usable session ID.
const SessionHeader = "X-Session-ID"

// Session extracts the planning session ID from the request, generating one
// when needed, and adds it to the request context. The ID is always echoed in
// the response header so clients can persist it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(r.Header.Get(SessionHeader))
		if err != nil {
			sessionID = uuid.New()
		}

		w.Header().Set(SessionHeader, sessionID.String())

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionIDFromContext returns the planning session ID placed in the
// context by the Session middleware.
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}
