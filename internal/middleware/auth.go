package middleware

import (
	"errors"
	"net/http"
	"strings"

	"anoa.com/edusphere/internal/access"
	"anoa.com/edusphere/internal/entity"
	authService "anoa.com/edusphere/internal/modules/auth/service"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"anoa.com/edusphere/pkg/apperror"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
)

// ContextUserKey holds the *entity.User loaded for role-gated routes.
const ContextUserKey = "user"

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	tokens   authService.TokenService
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, tokens authService.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Browsers cannot set headers on websocket upgrades.
	return c.Query("token")
}

// Require enforces one capability. Roles are read from the store on every
// request, so a promotion or demotion applies to the caller's next request.
func (m *AuthMiddleware) Require(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !capability.NeedsToken() {
			c.Next()
			return
		}

		claims, err := m.tokens.Verify(bearerToken(c))
		if err != nil {
			response.ResponseError(c, apperror.New(http.StatusUnauthorized, "invalid or missing token", err))
			c.Abort()
			return
		}
		c.Set(response.ContextEmailKey, claims.Email)

		if !capability.NeedsRole() {
			c.Next()
			return
		}

		user, err := m.userRepo.FindByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				response.ResponseError(c, apperror.New(http.StatusForbidden, "user not registered", apperror.ErrForbidden))
			} else {
				response.ResponseError(c, err)
			}
			c.Abort()
			return
		}

		if !capability.Allows(user.Role) {
			response.ResponseError(c, apperror.New(http.StatusForbidden, capability.String()+" access required", apperror.ErrForbidden))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by a role-gated Require, if any.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
