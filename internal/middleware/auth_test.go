package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/edusphere/internal/access"
	"anoa.com/edusphere/internal/entity"
	authService "anoa.com/edusphere/internal/modules/auth/service"
	"anoa.com/edusphere/internal/store/memory"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*gin.Engine, authService.TokenService) {
	t.Helper()

	repos := memory.New()
	ctx := context.Background()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{Email: "student@x.com"}))
	require.NoError(t, repos.Users.Create(ctx, &entity.User{Email: "teacher@x.com", Role: entity.RoleTeacher}))
	require.NoError(t, repos.Users.Create(ctx, &entity.User{Email: "admin@x.com", Role: entity.RoleAdmin}))

	tokens := authService.NewTokenService("secret", time.Hour)
	auth := NewAuthMiddleware(repos.Users, tokens)

	r := gin.New()
	ok := func(c *gin.Context) {
		email, _ := response.GetEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email})
	}
	r.GET("/public", auth.Require(access.Public), ok)
	r.GET("/authenticated", auth.Require(access.Authenticated), ok)
	r.GET("/teacher", auth.Require(access.Teacher), ok)
	r.GET("/admin", auth.Require(access.Admin), ok)
	return r, tokens
}

func TestRequire(t *testing.T) {
	r, tokens := setup(t)

	token := func(email string) string {
		tok, _, err := tokens.Issue(email)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"public without token", "/public", "", http.StatusOK},
		{"authenticated without token", "/authenticated", "", http.StatusUnauthorized},
		{"authenticated with garbage", "/authenticated", "garbage", http.StatusUnauthorized},
		{"authenticated unregistered", "/authenticated", token("ghost@x.com"), http.StatusOK},
		{"teacher as student", "/teacher", token("student@x.com"), http.StatusForbidden},
		{"teacher as teacher", "/teacher", token("teacher@x.com"), http.StatusOK},
		{"teacher as admin", "/teacher", token("admin@x.com"), http.StatusOK},
		{"teacher unregistered", "/teacher", token("ghost@x.com"), http.StatusForbidden},
		{"admin as teacher", "/admin", token("teacher@x.com"), http.StatusForbidden},
		{"admin as admin", "/admin", token("admin@x.com"), http.StatusOK},
		{"admin without token", "/admin", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRequireAcceptsQueryToken(t *testing.T) {
	r, tokens := setup(t)
	tok, _, err := tokens.Issue("student@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/authenticated?token="+tok, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "student@x.com")
}

func TestTimeoutSetsDeadline(t *testing.T) {
	r := gin.New()
	r.GET("/", Timeout(time.Second), func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"deadline":true}`, w.Body.String())
}
