package v1

import (
	"net/http"

	"job-board-backend/config"
	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	cfg    *config.Config
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config, limit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC, cfg: cfg}

	users := public.Group("/user")
	{
		users.POST("/register", limit, handler.Register)
		users.POST("/login", limit, handler.Login)
		users.GET("/logout", handler.Logout)
	}

	sessions := protected.Group("/user")
	{
		sessions.GET("/getUser", handler.GetUser)
	}
}

// Register godoc
// @Summary      Register a user
// @Description  Creates an Employer or Job Seeker account and starts a session
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        user  body      domain.RegisterInput  true  "Registration form"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var in domain.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(apperror.Validation("Please fill full registration form!"))
		return
	}

	user, session, err := h.authUC.Register(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, session.Token)
	response.Success(c, http.StatusOK, "User Register Successfully!", gin.H{
		"user":  user,
		"token": session.Token,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Checks email, password and role, then starts a session
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginInput  true  "Credentials"
// @Success      200          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Router       /user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var in domain.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(apperror.Validation("Please provide email, password and role."))
		return
	}

	user, session, err := h.authUC.Login(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, session.Token)
	response.Success(c, http.StatusOK, "User Logged in Successfully!", gin.H{
		"user":  user,
		"token": session.Token,
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the current session if it is still valid and always clears the token cookie
// @Tags         user
// @Produce      json
// @Success      201  {object}  response.Response
// @Router       /user/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := middleware.SessionToken(c)
	h.authUC.Logout(c.Request.Context(), token)

	h.cookieSameSite(c)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	response.Success(c, http.StatusCreated, "User logged out Successfully!", nil)
}

// GetUser godoc
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /user/getUser [get]
// @Security     BearerAuth
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(apperror.Auth("User Not Authorized"))
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	h.cookieSameSite(c)
	maxAge := h.cfg.CookieExpireDays * 24 * 60 * 60
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.cfg.CookieSecure, true)
}

// Cross-site frontends only receive the cookie with SameSite=None, which
// browsers accept on secure cookies only.
func (h *AuthHandler) cookieSameSite(c *gin.Context) {
	if h.cfg.CookieSecure {
		c.SetSameSite(http.SameSiteNoneMode)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
}
