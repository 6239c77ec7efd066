package api

import (
	"errors"
	"fmt"
	"net/http"

	"crypto-analytics/internal/analysis"
	"crypto-analytics/internal/logging"
	"crypto-analytics/internal/market"

	"github.com/gin-gonic/gin"
)

// AnalyzeRequest is the request body for the analyze and indicators
// endpoints. Callers always supply the candles; the server never
// fetches market data itself.
type AnalyzeRequest struct {
	Symbol  string          `json:"symbol" binding:"required"`
	Candles []market.Candle `json:"candles" binding:"required"`
}

// validateRequest parses and checks the request body. It writes the
// error response itself and returns false when the request is rejected.
func (s *Server) validateRequest(c *gin.Context, req *AnalyzeRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	if s.config.MaxCandles > 0 && len(req.Candles) > s.config.MaxCandles {
		errorResponse(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("series too long: %d candles, limit %d", len(req.Candles), s.config.MaxCandles))
		return false
	}

	if err := market.Validate(req.Candles); err != nil {
		errorResponse(c, http.StatusUnprocessableEntity, fmt.Sprintf("invalid candles: %v", err))
		return false
	}

	return true
}

// handleAnalyze computes the full market summary for a candle series
func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if !s.validateRequest(c, &req) {
		return
	}

	if s.summaries != nil {
		if summary, ok := s.summaries.Get(c.Request.Context(), req.Symbol, req.Candles); ok {
			successResponse(c, summary)
			return
		}
	}

	summary, err := s.analyzer.Summarize(req.Symbol, req.Candles)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientData) {
			// A documented result kind, not a transport error.
			c.JSON(http.StatusOK, gin.H{
				"success":           false,
				"insufficient_data": true,
				"symbol":            req.Symbol,
				"candles":           len(req.Candles),
				"message":           err.Error(),
			})
			return
		}
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	logging.AnalysisContext(req.Symbol, len(req.Candles)).
		WithTraceID(c.GetString("trace_id")).
		Info("summary computed", "signals", len(summary.Signals))

	if s.summaries != nil {
		s.summaries.Put(c.Request.Context(), req.Symbol, req.Candles, summary)
	}

	successResponse(c, summary)
}

// handleIndicators computes just the indicator groups, without levels,
// patterns, or signals. There is no minimum series length here; short
// inputs return the neutral defaults.
func (s *Server) handleIndicators(c *gin.Context) {
	var req AnalyzeRequest
	if !s.validateRequest(c, &req) {
		return
	}

	successResponse(c, s.analyzer.Indicators(req.Symbol, req.Candles))
}
