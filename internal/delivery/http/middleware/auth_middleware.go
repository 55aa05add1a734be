package middleware

import (
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// keyViaCookie marks requests authenticated by the session cookie.
const keyViaCookie = "auth_via_cookie"

// AuthMiddleware resolves the session once and stores the caller on the context.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, viaCookie := SessionToken(c)

		user, err := authUC.ResolveSession(c.Request.Context(), token)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeySession), token)
		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserRole), string(user.Role))
		c.Set(string(domain.KeyIdentity), domain.Identity{UserID: user.ID, Role: user.Role})
		c.Set(keyViaCookie, viaCookie)
		c.Set(string(domain.KeyUser), user)

		c.Next()
	}
}

// SessionToken reads the token cookie, then the Authorization header.
func SessionToken(c *gin.Context) (token string, viaCookie bool) {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), false
	}
	return "", false
}

// CurrentIdentity returns the caller set by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (domain.Identity, error) {
	v, ok := c.Get(string(domain.KeyIdentity))
	if !ok {
		return domain.Identity{}, apperror.Auth("User Not Authorized")
	}
	id, ok := v.(domain.Identity)
	if !ok {
		return domain.Identity{}, apperror.Auth("User Not Authorized")
	}
	return id, nil
}

// CurrentUser returns the user record resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(string(domain.KeyUser))
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
