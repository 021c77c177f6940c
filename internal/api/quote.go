package api

import (
	"net/http" // HTTP status codes

	"paper_trader/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin" // Gin web framework
)

// QuoteRequest is the quote form
type QuoteRequest struct {
	Symbol string `form:"symbol" json:"symbol"`
}

// QuoteForm describes the quote form
func (h *Handler) QuoteForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "quote", "fields": []string{"symbol"}})
}

// Quote shows the current price of a stock
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, domain.NewError(domain.ErrValidation, "Invalid request"))
		return
	}
	q, err := h.Trades.Resolve(c.Request.Context(), req.Symbol)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":      q.Name,
		"symbol":    q.Symbol,
		"price":     q.Price,
		"price_usd": usd(q.Price),
	})
}
