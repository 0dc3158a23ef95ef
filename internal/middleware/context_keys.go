package middleware

import (
	"context"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const actorCtxKey = contextKey("actor")

// GetActorFromContext retrieves the authenticated actor resolved by the auth
// middleware. The boolean reports whether one was present.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// WithActor returns a context carrying the given actor. Used by the auth
// middleware and by tests that exercise handlers without a real token.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}
