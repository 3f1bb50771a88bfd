package httpapi

import (
	"context"

	"github.com/riskibarqy/career-coach/internal/domain/user"
)

type contextKey string

const sessionContextKey contextKey = "auth_session"

func withSession(ctx context.Context, session user.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// sessionFromContext returns the verified session, if any. A zero session is
// reported as absent.
func sessionFromContext(ctx context.Context) (user.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(user.Session)
	return session, ok && session.Authenticated()
}
