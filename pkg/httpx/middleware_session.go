package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/opsdeck/console/pkg/slogx"
)

// SessionCookie is the name of the session-identifying cookie.
const SessionCookie = "ss-id"

// Principal describes who a validated session belongs to.
type Principal struct {
	SessionID string
	UserID    int64
	Role      string
}

// SessionValidator resolves a session cookie value into a Principal.
// Implementations must reject unknown and expired sessions.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (Principal, error)
}

// SessionAuthn authenticates requests by the session cookie and injects the
// principal into the request context. Requests without a valid session get a
// 401 with the uniform error body.
func SessionAuthn(v SessionValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				Unauthorized("Authentication required").WriteError(w)
				return
			}

			principal, err := v.ValidateSession(ctx, cookie.Value)
			if err != nil {
				log.Warn("session validation failed", "err", err)
				ClearSessionCookie(w)
				Unauthorized("Authentication required").WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, principal.UserID)
			ctx = context.WithValue(ctx, CtxKeyRole, principal.Role)
			ctx = context.WithValue(ctx, CtxKeySessionID, principal.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request through only when the authenticated role is
// one of the provided values. Must run after SessionAuthn.
func RequireRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromCtx(r.Context())]; !ok {
				Forbidden("Insufficient privileges").WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookie issues the session cookie. HttpOnly keeps it away from
// scripts; SameSite=Lax matches the console's top-level navigation flows.
func SetSessionCookie(w http.ResponseWriter, sessionID string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
