package api

import (
	"net/http" // HTTP status codes
	"time"

	"github.com/gin-gonic/gin" // Gin web framework
)

// Index shows the portfolio marked to market
func (h *Handler) Index(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	summary, err := h.Portfolio.Holdings(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	holdings := make([]gin.H, len(summary.Holdings))
	for i, hd := range summary.Holdings {
		holdings[i] = gin.H{
			"symbol":    hd.Symbol,
			"name":      hd.Name,
			"shares":    hd.Shares,
			"price":     hd.Price,
			"price_usd": usd(hd.Price),
			"value":     hd.Value,
			"value_usd": usd(hd.Value),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"holdings":  holdings,
		"cash":      summary.Cash,
		"cash_usd":  usd(summary.Cash),
		"total":     summary.Total,
		"total_usd": usd(summary.Total),
	})
}

// History lists every transaction of the user
func (h *Handler) History(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	txs, err := h.Portfolio.History(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	rows := make([]gin.H, len(txs))
	for i, tx := range txs {
		rows[i] = gin.H{
			"purchase_time": tx.PurchaseTime.UTC().Format(time.RFC3339),
			"symbol":        tx.Symbol,
			"stock":         tx.Stock,
			"shares":        tx.Shares,
			"price":         tx.Price,
			"price_usd":     usd(tx.Price),
		}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": rows})
}
