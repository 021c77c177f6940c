package api

import (
	"bytes"
	"encoding/json"
	"net/http" // HTTP status codes

	"paper_trader/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin" // Gin web framework
)

// TradeRequest is the buy and sell form
type TradeRequest struct {
	Symbol string     `form:"symbol" json:"symbol"`
	Shares ShareCount `form:"shares" json:"shares"`
}

// ShareCount is the raw shares input. JSON bodies may send it as a number or
// a string; either way the text is validated by trade.ParseShares.
type ShareCount string

// UnmarshalJSON keeps the literal text of a JSON number
func (s *ShareCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = ShareCount(str)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	*s = ShareCount(data)
	return nil
}

// BuyForm describes the buy form
func (h *Handler) BuyForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "buy", "fields": []string{"symbol", "shares"}})
}

// Buy purchases shares at the current price
func (h *Handler) Buy(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	var req TradeRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, domain.NewError(domain.ErrValidation, "Invalid request"))
		return
	}
	if _, err := h.Trades.Buy(c.Request.Context(), userID, req.Symbol, string(req.Shares)); err != nil {
		fail(c, err)
		return
	}
	// show the purchase on the portfolio page
	c.Redirect(http.StatusFound, "/")
}

// SellForm describes the sell form with the symbols the user can sell
func (h *Handler) SellForm(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	symbols, err := h.Portfolio.Symbols(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": "sell", "fields": []string{"symbol", "shares"}, "symbols": symbols})
}

// Sell sells shares at the current price
func (h *Handler) Sell(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	var req TradeRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, domain.NewError(domain.ErrValidation, "Invalid request"))
		return
	}
	if _, err := h.Trades.Sell(c.Request.Context(), userID, req.Symbol, string(req.Shares)); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
