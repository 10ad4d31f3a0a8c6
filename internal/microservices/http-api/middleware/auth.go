package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/models"
	"bloghub/internal/microservices/http-api/response"
)

const (
	MsgMissingHeader = "authorization header missing"
	MsgBadFormat     = "invalid authorization header format"

	currentUserKey = "currentUser"
)

// IdentityResolver turns a bearer token into a live user.
type IdentityResolver interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Gate authenticates requests. RequireIdentity rejects anonymous callers;
// ResolveIdentity lets them through without a user.
type Gate struct {
	resolver IdentityResolver
}

func NewGate(resolver IdentityResolver) *Gate {
	return &Gate{resolver: resolver}
}

// identify reads "Authorization: Bearer <token>" and resolves the token.
func (g *Gate) identify(c *gin.Context) (*models.User, error) {
	header := c.GetHeader("Authorization")
	if strings.TrimSpace(header) == "" {
		return nil, apperror.New(apperror.MissingHeader, MsgMissingHeader, nil)
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperror.New(apperror.BadFormat, MsgBadFormat, nil)
	}

	return g.resolver.Authenticate(c.Request.Context(), parts[1])
}

// RequireIdentity aborts with 401 unless the request carries a valid token
// for an existing user.
func (g *Gate) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := g.identify(c)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// ResolveIdentity attaches the user when the token is good and otherwise
// continues anonymously. A failing credential store is still a 500.
func (g *Gate) ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := g.identify(c)
		switch {
		case err == nil:
			c.Set(currentUserKey, user)
		case apperror.KindOf(err) == apperror.Internal:
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by the gate, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentUserID is CurrentUser for callers that only need the id.
func CurrentUserID(c *gin.Context) *int64 {
	if user, ok := CurrentUser(c); ok {
		id := user.ID
		return &id
	}
	return nil
}
