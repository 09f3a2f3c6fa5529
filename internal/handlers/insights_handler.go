package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/insights"
)

// RateSource returns exchange rates for a base currency.
type RateSource interface {
	Rates(ctx context.Context, base string) insights.Rates
}

// InsightsHandler serves tips, quotes and exchange rates.
type InsightsHandler struct {
	rates RateSource
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(rates RateSource) *InsightsHandler {
	return &InsightsHandler{rates: rates}
}

// Tips returns curated financial tips.
// @Summary     Financial tips
// @Tags        insights
// @Produce     json
// @Success     200 {array} insights.Tip "Tips"
// @Router      /insights/tips [get]
func (h *InsightsHandler) Tips(c *gin.Context) {
	c.JSON(http.StatusOK, insights.Tips())
}

// Quotes returns curated quotes about money.
// @Summary     Financial quotes
// @Tags        insights
// @Produce     json
// @Success     200 {array} insights.Quote "Quotes"
// @Router      /insights/quotes [get]
func (h *InsightsHandler) Quotes(c *gin.Context) {
	c.JSON(http.StatusOK, insights.Quotes())
}

// ExchangeRates returns current rates for a base currency. When the rate
// provider is unavailable the built-in table is returned with fallback set.
// @Summary     Exchange rates
// @Tags        insights
// @Produce     json
// @Param       base query string false "Base currency (default USD)"
// @Success     200 {object} insights.Rates "Rates"
// @Failure     422 {object} ErrorResponse "Validation error"
// @Router      /insights/exchange-rates [get]
func (h *InsightsHandler) ExchangeRates(c *gin.Context) {
	var req struct {
		Base string `form:"base" binding:"omitempty,iso4217"`
	}
	if err := bindQuery(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.rates.Rates(c.Request.Context(), req.Base))
}

// NumbersResponse lists the numbers found in a piece of text.
type NumbersResponse struct {
	Numbers []float64 `json:"numbers"`
}

// ExtractNumbers pulls every signed decimal number out of free text, such as
// a pasted bank notification.
// @Summary     Extract numbers from text
// @Tags        insights
// @Produce     json
// @Param       text query string true "Text to scan"
// @Success     200 {object} NumbersResponse "Numbers in order of appearance"
// @Failure     422 {object} ErrorResponse "Validation error"
// @Router      /insights/numbers [get]
func (h *InsightsHandler) ExtractNumbers(c *gin.Context) {
	var req struct {
		Text string `form:"text" binding:"required,max=10000"`
	}
	if err := bindQuery(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, NumbersResponse{Numbers: insights.ExtractNumbers(req.Text)})
}
