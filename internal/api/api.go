package api

import (
	"math"
	"net/http" // HTTP status codes

	"paper_trader/internal/auth"       // Registration and login
	"paper_trader/internal/domain"     // Error taxonomy
	"paper_trader/internal/middleware" // Session and request middleware
	"paper_trader/internal/portfolio"  // Holdings and history
	"paper_trader/internal/trade"      // Buy and sell

	"github.com/Rhymond/go-money"  // Currency display
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/shopspring/decimal" // Money arithmetic
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Auth      *auth.Engine
	Trades    *trade.Engine
	Portfolio *portfolio.Engine
	Session   *middleware.Session
}

// NewHandler creates a new handler
func NewHandler(authEngine *auth.Engine, trades *trade.Engine, pf *portfolio.Engine, session *middleware.Session) *Handler {
	return &Handler{Auth: authEngine, Trades: trades, Portfolio: pf, Session: session}
}

// Routes registers every route on r
func (h *Handler) Routes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) { apologize(c, http.StatusNotFound, "Not Found") })
	r.NoMethod(func(c *gin.Context) { apologize(c, http.StatusMethodNotAllowed, "Method Not Allowed") })

	// Auth routes
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	// Routes that need a logged in user
	user := r.Group("/")
	user.Use(h.Session.Require())
	user.GET("/", h.Index)
	user.GET("/index", h.Index)
	user.GET("/history", h.History)
	user.GET("/quote", h.QuoteForm)
	user.POST("/quote", h.Quote)
	user.GET("/buy", h.BuyForm)
	user.POST("/buy", h.Buy)
	user.GET("/sell", h.SellForm)
	user.POST("/sell", h.Sell)
}

// fail renders err as an apology; server-side failures are logged
func fail(c *gin.Context, err error) {
	status := domain.StatusOf(err)
	entry := middleware.Logger(c).WithField("path", c.FullPath())
	if status >= http.StatusInternalServerError {
		entry.WithField("error", err.Error()).Error("Request failed")
	} else {
		entry.WithField("reason", domain.MessageOf(err)).Debug("Request rejected")
	}
	apologize(c, status, domain.MessageOf(err))
}

// apologize writes the error page
func apologize(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": status})
}

// sessionUser returns the logged in user id set by Session.Require
func sessionUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
	return id, ok
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

// usd formats an amount as US dollars, e.g. $1,234.56. Amounts whose cents do
// not fit an int64 are printed without thousands separators.
func usd(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		if d.IsNegative() {
			return "-$" + d.Abs().StringFixed(2)
		}
		return "$" + d.StringFixed(2)
	}
	return money.New(cents.IntPart(), money.USD).Display()
}
