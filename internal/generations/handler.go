package generations

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-forge/internal/shared/server/middleware"
	"resume-forge/internal/shared/server/respond"
	"resume-forge/internal/shared/telemetry"
	"resume-forge/resume/render"
)

// Handler exposes the generation endpoints.
type Handler struct {
	Svc *Service
	Env string
}

// NewHandler constructs a Handler. Env gates whether internal error detail
// is included in responses.
func NewHandler(svc *Service, env string) *Handler {
	return &Handler{Svc: svc, Env: env}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generations", h.create)
	rg.GET("/generations/templates", h.listTemplates)
}

func (h *Handler) listTemplates(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"templates": render.Templates()})
}

func (h *Handler) create(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body is not valid JSON", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if wantsBinary(c) {
		respond.Binary(c, "application/pdf", result.FileName, result.PDF)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"content":   result.Content,
		"document":  result.Document,
		"pdfBase64": base64.StdEncoding.EncodeToString(result.PDF),
		"fileName":  result.FileName,
		"usage":     result.Usage,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if v, ok := AsValidation(err); ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", v.Msg, nil)
		return
	}
	if q, ok := AsQuota(err); ok {
		respond.Error(c, http.StatusForbidden, "quota_error", q.Msg, gin.H{
			"used":   q.Status.Used,
			"limit":  q.Status.Limit,
			"exempt": q.Status.Exempt,
		})
		return
	}
	if u, ok := AsUpstream(err); ok {
		respond.Error(c, http.StatusBadGateway, "extraction_failed", u.Msg, h.debugDetail(err))
		return
	}

	telemetry.Error("generation.internal_error", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"error":      err.Error(),
	})
	respond.Error(c, http.StatusInternalServerError, "internal_error", "generation failed", h.debugDetail(err))
}

// debugDetail exposes internal error text only outside production.
func (h *Handler) debugDetail(err error) any {
	if h.Env == "production" {
		return nil
	}
	return gin.H{"detail": err.Error()}
}

func wantsBinary(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/pdf")
}
