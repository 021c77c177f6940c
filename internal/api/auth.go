package api

import (
	"net/http" // HTTP status codes

	"paper_trader/internal/domain"     // Error taxonomy
	"paper_trader/internal/middleware" // Request logger

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the registration form
type RegisterRequest struct {
	Username     string `form:"username" json:"username"`
	Password     string `form:"password" json:"password"`
	Confirmation string `form:"confirmation" json:"confirmation"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// RegisterForm describes the registration form
func (h *Handler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "register", "fields": []string{"username", "password", "confirmation"}})
}

// Register creates the user and logs them in
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, domain.NewError(domain.ErrValidation, "Invalid request"))
		return
	}
	user, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password, req.Confirmation)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Session.Start(c, user.ID); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// LoginForm describes the login form. Visiting it forgets the current session.
func (h *Handler) LoginForm(c *gin.Context) {
	h.Session.Clear(c)
	c.JSON(http.StatusOK, gin.H{"form": "login", "fields": []string{"username", "password"}})
}

// Login authenticates and starts a session
func (h *Handler) Login(c *gin.Context) {
	// Forget any user_id before trying, so a failed attempt leaves no identity
	h.Session.Clear(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, domain.NewError(domain.ErrValidation, "Invalid request"))
		return
	}
	user, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Session.Start(c, user.ID); err != nil {
		fail(c, err)
		return
	}
	middleware.Logger(c).Info("User logged in")
	c.Redirect(http.StatusFound, "/")
}

// Logout forgets the session
func (h *Handler) Logout(c *gin.Context) {
	h.Session.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
