// Package session turns a bearer token into the caller's role and navigation access.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/SAP-F-2025/trainee-dashboard/internal/cache"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/navigation"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories/strapi"
)

// Session is the resolved state of one caller. Expired marks a token the CMS
// rejected with 401.
type Session struct {
	Token         string            `json:"-"`
	TokenKey      string            `json:"-"`
	User          *models.User      `json:"user,omitempty"`
	Role          models.UserRole   `json:"role"`
	Access        navigation.Access `json:"access"`
	Authenticated bool              `json:"authenticated"`
	Authorized    bool              `json:"authorized"`
	Expired       bool              `json:"expired,omitempty"`
}

// UserID returns the numeric CMS id of the caller as a string, or "".
func (s Session) UserID() string {
	if s.User == nil || s.User.ID == 0 {
		return ""
	}
	return strconv.Itoa(s.User.ID)
}

// Context returns ctx carrying the session token for CMS calls.
func (s Session) Context(ctx context.Context) context.Context {
	return strapi.WithToken(ctx, s.Token)
}

// Resolver looks up the current user behind a token.
type Resolver struct {
	accounts repositories.AccountRepository
	cache    *cache.CacheHelper
	ttl      time.Duration
	logger   *slog.Logger
}

func NewResolver(accounts repositories.AccountRepository, helper *cache.CacheHelper, ttl time.Duration, logger *slog.Logger) *Resolver {
	if ttl <= 0 {
		ttl = cache.SessionCacheConfig.TTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{accounts: accounts, cache: helper, ttl: ttl, logger: logger}
}

// TokenKey is the cache key of a token; the token itself is never stored.
func TokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Resolve never fails. An empty token or one the CMS rejects with 401 gives an
// unauthenticated session; any other lookup failure gives an authenticated but
// unauthorized one.
func (r *Resolver) Resolve(ctx context.Context, token string) Session {
	if token == "" {
		return Session{Role: models.RoleUnknown, Access: navigation.Resolve(models.RoleUnknown)}
	}

	s := Session{Token: token, TokenKey: TokenKey(token), Authenticated: true}
	ctx = strapi.WithToken(ctx, token)

	var user models.User
	err := r.cache.CacheOrExecute(ctx, s.TokenKey, &user, r.ttl, func() (interface{}, error) {
		return r.accounts.Me(ctx)
	})
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to resolve session", "error", err)
		var apiErr *strapi.APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			s.Authenticated = false
			s.Expired = true
		}
		s.Role = models.RoleUnknown
		s.Access = navigation.Resolve(models.RoleUnknown)
		return s
	}

	s.User = &user
	s.Role = models.ParseRole(user.RoleName())
	s.Access = navigation.Resolve(s.Role)
	s.Authorized = s.Access.Authorized
	if !s.Authorized {
		r.logger.InfoContext(ctx, "Role not authorized",
			"user_id", user.ID,
			"role", user.RoleName())
	}
	return s
}

// Invalidate forgets the cached profile of token.
func (r *Resolver) Invalidate(ctx context.Context, token string) {
	cache.SafeDelete(ctx, r.cache, TokenKey(token))
}
