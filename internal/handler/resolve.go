// Package handler provides the HTTP handlers for the resolve service.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newsurl/internal/api"
	"github.com/jonesrussell/newsurl/internal/logger"
	"github.com/jonesrussell/newsurl/internal/resolver"
)

// errMissingURL is returned when the url query parameter is absent.
var errMissingURL = errors.New("missing url parameter")

// Resolver resolves redirect URLs to article URLs.
type Resolver interface {
	Resolve(ctx context.Context, redirectURL string) (string, error)
}

// ResolveRequest is the POST body for the resolve endpoint.
type ResolveRequest struct {
	URL string `json:"url" binding:"required"`
}

// ResolveResponse is the success payload for the resolve endpoint.
type ResolveResponse struct {
	URL      string `json:"url"`
	Resolved string `json:"resolved"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// ResolveHandler handles resolve and redirect requests.
type ResolveHandler struct {
	resolver Resolver
	metrics  *api.Metrics
	logger   logger.Logger
}

// NewResolveHandler creates a ResolveHandler with the given dependencies.
func NewResolveHandler(res Resolver, metrics *api.Metrics, log logger.Logger) *ResolveHandler {
	return &ResolveHandler{
		resolver: res,
		metrics:  metrics,
		logger:   log,
	}
}

// Resolve handles resolve requests (both GET and POST).
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req ResolveRequest

	if c.Request.Method == http.MethodGet {
		req.URL = c.Query("url")
		if req.URL == "" {
			writeError(c, http.StatusBadRequest, "MISSING_URL", errMissingURL)
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("Invalid resolve request body", logger.Error(err))
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
			return
		}
	}

	resolved, ok := h.resolve(c, req.URL)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{URL: req.URL, Resolved: resolved})
}

// Redirect resolves the u query parameter and redirects the client to the
// article. Lets a feed reader follow wrapper links through this service.
func (h *ResolveHandler) Redirect(c *gin.Context) {
	rawURL := c.Query("u")
	if rawURL == "" {
		writeError(c, http.StatusBadRequest, "MISSING_URL", errMissingURL)
		return
	}

	resolved, ok := h.resolve(c, rawURL)
	if !ok {
		return
	}

	c.Redirect(http.StatusFound, resolved)
}

// resolve runs the resolution, records metrics, and writes the error
// response on failure.
func (h *ResolveHandler) resolve(c *gin.Context, rawURL string) (string, bool) {
	start := time.Now()
	resolved, err := h.resolver.Resolve(c.Request.Context(), rawURL)
	duration := time.Since(start)

	if err != nil {
		status, code, outcome := classifyError(err)
		h.metrics.RecordResolve(outcome, duration)
		h.logger.Warn("Resolve failed",
			logger.String("url", rawURL),
			logger.String("code", code),
			logger.Error(err),
		)
		writeError(c, status, code, err)
		return "", false
	}

	h.metrics.RecordResolve(api.OutcomeSuccess, duration)
	return resolved, true
}

// classifyError maps a resolve error to HTTP status, error code, and metric
// outcome. Invalid input is checked first since it is reported as a parse
// error by the resolver.
func classifyError(err error) (status int, code, outcome string) {
	var netErr *resolver.NetworkError
	var parseErr *resolver.ParseError

	switch {
	case errors.Is(err, resolver.ErrInvalidRedirectURL):
		return http.StatusBadRequest, "INVALID_URL", api.OutcomeInvalidInput
	case errors.As(err, &netErr):
		return http.StatusBadGateway, "NETWORK_ERROR", api.OutcomeNetworkError
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, "PARSE_ERROR", api.OutcomeParseError
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", api.OutcomeInternalError
	}
}

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		Timestamp: time.Now(),
	})
}
