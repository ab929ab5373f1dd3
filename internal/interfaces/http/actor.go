package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

// Actor identification headers. Authentication happens upstream (reverse
// proxy or SSO gateway); this layer only consumes the asserted identity.
const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorName  = "X-Actor-Name"
	HeaderActorRoles = "X-Actor-Roles"
)

const actorContextKey = "actor"

// ActorMiddleware extracts the acting user from the request headers and
// rejects requests without an identity.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderActorID))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing actor identity",
			})
			return
		}

		var roles []string
		for _, role := range strings.Split(c.GetHeader(HeaderActorRoles), ",") {
			role = strings.ToUpper(strings.TrimSpace(role))
			if role != "" {
				roles = append(roles, role)
			}
		}
		if len(roles) == 0 {
			roles = []string{entity.RoleEmployee}
		}

		c.Set(actorContextKey, entity.ActorContext{
			ID:    id,
			Name:  strings.TrimSpace(c.GetHeader(HeaderActorName)),
			Roles: roles,
		})
		c.Next()
	}
}

// actorFrom returns the actor placed on the context by ActorMiddleware
func actorFrom(c *gin.Context) entity.ActorContext {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(entity.ActorContext); ok {
			return actor
		}
	}
	return entity.ActorContext{}
}
