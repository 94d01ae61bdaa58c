package usage

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-forge/internal/shared/server/respond"
)

// Handler exposes usage endpoints.
type Handler struct {
	Svc        *Service
	Summarizer *Summarizer
}

// NewHandler constructs a Handler. The summarizer may be nil when no LLM is
// configured; the summary endpoint then reports unavailability.
func NewHandler(svc *Service, summarizer *Summarizer) *Handler {
	return &Handler{Svc: svc, Summarizer: summarizer}
}

// RegisterRoutes attaches usage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
	rg.GET("/usage/summary", h.getSummary)
}

func (h *Handler) getUsage(c *gin.Context) {
	email, ok := emailParam(c)
	if !ok {
		return
	}

	status, err := h.Svc.CheckLimit(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch usage", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"canGenerate": status.CanGenerate,
		"used":        status.Used,
		"limit":       status.Limit,
		"exempt":      status.Exempt,
	})
}

func (h *Handler) getSummary(c *gin.Context) {
	email, ok := emailParam(c)
	if !ok {
		return
	}
	if h.Summarizer == nil {
		respond.Error(c, http.StatusServiceUnavailable, "summary_unavailable", "usage summary is not configured", nil)
		return
	}

	summary, err := h.Summarizer.Summarize(c.Request.Context(), email)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "summary_failed", "could not generate usage summary", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"summary": summary})
}

func emailParam(c *gin.Context) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email query parameter is required", nil)
		return "", false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is not a valid address", nil)
		return "", false
	}
	return email, true
}
