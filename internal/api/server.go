package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"crypto-analytics/config"
	"crypto-analytics/internal/analysis"
	"crypto-analytics/internal/cache"
	"crypto-analytics/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimiter provides simple in-memory rate limiting per client
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int           // max requests
	window   time.Duration // time window
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow checks if a request is allowed for the given key
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-r.window)

	// Filter out old requests
	var recent []time.Time
	for _, t := range r.requests[key] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= r.limit {
		r.requests[key] = recent
		return false
	}

	r.requests[key] = append(recent, now)
	return true
}

// Server represents the HTTP API server
type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	analyzer    *analysis.Analyzer
	summaries   *cache.SummaryCache // nil when Redis is disabled
	config      config.ServerConfig
	rateLimiter *RateLimiter
	logger      zerolog.Logger
}

// NewServer creates a new API server. summaries may be nil, in which
// case every request computes from scratch.
func NewServer(
	cfg config.ServerConfig,
	analyzer *analysis.Analyzer,
	summaries *cache.SummaryCache,
	logger zerolog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:      router,
		analyzer:    analyzer,
		summaries:   summaries,
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RateLimit, time.Duration(cfg.RateLimitWindow)*time.Second),
		logger:      logger.With().Str("component", "api").Logger(),
	}

	router.Use(server.requestLogger())

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	origins := cfg.AllowedOriginList()
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	server.setupRoutes()

	return server
}

// requestLogger logs each request with latency and status. Every
// request gets a trace ID, either from the X-Trace-ID header or
// freshly generated, which is echoed back in the response.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader("X-Trace-ID")
		if traceID == "" {
			traceID = logging.GenerateTraceID()
		}
		c.Set("trace_id", traceID)
		c.Header("X-Trace-ID", traceID)

		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("trace_id", traceID).
			Msg("request")
	}
}

// rateLimitMiddleware limits requests per client IP
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.config.RateLimit <= 0 {
			c.Next()
			return
		}

		if !s.rateLimiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   true,
				"message": "Rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.Use(s.rateLimitMiddleware())
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.POST("/indicators", s.handleIndicators)
	}
}

// Start runs the HTTP server and blocks until shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// handleHealth returns server and cache health
func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{
		"status": "healthy",
		"cache":  "disabled",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	if s.summaries != nil {
		if s.summaries.Healthy() {
			resp["cache"] = "healthy"
		} else {
			resp["cache"] = "degraded"
		}
		if stats, ok := s.summaries.Stats(); ok {
			resp["cache_stats"] = stats
		}
	}

	c.JSON(http.StatusOK, resp)
}

// errorResponse is a helper to send error responses
func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":   true,
		"message": message,
	})
}

// successResponse is a helper to send success responses
func successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
