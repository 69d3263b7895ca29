package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/session"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

const (
	sessionKey  = "session"
	tokenCookie = "token"
)

// SessionAuthMiddleware resolves the CMS token of every request into a session
type SessionAuthMiddleware struct {
	resolver *session.Resolver
}

func NewSessionAuthMiddleware(resolver *session.Resolver) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{resolver: resolver}
}

// AuthMiddleware answers 401 with a redirect to the login page when no token is
// sent or the CMS rejects it, and 403 when the token's role may not use the dashboard.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		s := sam.resolver.Resolve(c.Request.Context(), token)

		if !s.Authenticated {
			if s.Expired {
				sam.resolver.Invalidate(c.Request.Context(), token)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:     "unauthorized",
				Message:   "authentication required",
				Redirect:  "/",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		c.Set(sessionKey, s)
		c.Set("user_id", s.UserID())
		c.Set("user_role", s.Role)

		if !s.Authorized {
			utils.FromContext(c.Request.Context()).Warn("Role not authorized for the dashboard",
				"user_id", s.UserID(),
				"role", s.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error:     "forbidden",
				Message:   "role not authorized",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		c.Next()
	}
}

// RequireSectionMiddleware lets the request through only when the caller's
// access renders one of sections.
func (sam *SessionAuthMiddleware) RequireSectionMiddleware(sections ...models.Section) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := currentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error:     "forbidden",
				Message:   "session not found in context",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		for _, section := range sections {
			if s.Access.Can(section) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error:     "forbidden",
			Message:   "section not available for this role",
			Details:   map[string]any{"role": s.Role, "sections": sections},
			Timestamp: time.Now().UTC(),
		})
	}
}

// Invalidate forgets the cached profile behind the request's token
func (sam *SessionAuthMiddleware) Invalidate(c *gin.Context) {
	if token := extractToken(c); token != "" {
		sam.resolver.Invalidate(c.Request.Context(), token)
	}
}

// extractToken reads "Authorization: Bearer <token>", then the token cookie.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

func currentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}
