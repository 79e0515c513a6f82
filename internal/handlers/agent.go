// Package handlers exposes the agent operations over gin.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jonesrussell/gosocial/internal/agent"
	"github.com/jonesrussell/gosocial/internal/logger"
	"github.com/jonesrussell/gosocial/internal/models"
)

const defaultRecentHours = 24

// AgentService is the orchestrator surface the handlers call.
type AgentService interface {
	Ingest(ctx context.Context, req *models.ContentAnalysisRequest) (*models.ContentAnalysisResponse, error)
	HistoricalContent(ctx context.Context, platform, bloggerName string) ([]models.Content, error)
	RecentContent(ctx context.Context, hours int) ([]models.Content, error)
	Recommendations(ctx context.Context, platform, bloggerName string) (string, error)
	Platforms() []string
}

type AgentHandler struct {
	service AgentService
	logger  logger.Logger
}

func NewAgentHandler(service AgentService, log logger.Logger) *AgentHandler {
	return &AgentHandler{
		service: service,
		logger:  log,
	}
}

// Analyze runs one ingestion cycle for a blogger.
func (h *AgentHandler) Analyze(c *gin.Context) {
	var req models.ContentAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, validationErrorBody(validationErrs))
			return
		}
		c.JSON(http.StatusBadRequest, badRequestBody("Invalid request body"))
		return
	}

	h.logger.Info("Analyzing blogger content",
		logger.String("platform", req.Platform),
		logger.String("identifier", req.BloggerIdentifier),
	)

	resp, err := h.service.Ingest(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnsupportedPlatform):
			c.JSON(http.StatusBadRequest, badRequestBody(fmt.Sprintf("Unsupported platform: %s", req.Platform)))
		case errors.Is(err, models.ErrInvalidIdentifier):
			c.JSON(http.StatusBadRequest, badRequestBody(fmt.Sprintf("Invalid blogger identifier for platform: %s", req.Platform)))
		default:
			h.logger.Error("Ingestion failed",
				logger.String("platform", req.Platform),
				logger.Error(err),
			)
			c.JSON(http.StatusInternalServerError, internalErrorBody())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Recommendations generates content strategy advice from stored history.
func (h *AgentHandler) Recommendations(c *gin.Context) {
	platform := c.Query("platform")
	bloggerName := c.Query("bloggerName")
	if platform == "" || bloggerName == "" {
		c.JSON(http.StatusBadRequest, badRequestBody("platform and bloggerName are required"))
		return
	}

	recommendations, err := h.service.Recommendations(c.Request.Context(), platform, bloggerName)
	if err != nil {
		if errors.Is(err, agent.ErrNoHistoricalContent) {
			c.JSON(http.StatusOK, gin.H{"error": "No content found for blogger"})
			return
		}
		h.logger.Error("Failed to generate recommendations",
			logger.String("platform", platform),
			logger.String("blogger_name", bloggerName),
			logger.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

// History returns a blogger's stored content, most recent first.
func (h *AgentHandler) History(c *gin.Context) {
	platform := c.Query("platform")
	bloggerName := c.Query("bloggerName")
	if platform == "" || bloggerName == "" {
		c.JSON(http.StatusBadRequest, badRequestBody("platform and bloggerName are required"))
		return
	}

	contents, err := h.service.HistoricalContent(c.Request.Context(), platform, bloggerName)
	if err != nil {
		h.logger.Error("Failed to load historical content",
			logger.String("platform", platform),
			logger.String("blogger_name", bloggerName),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, internalErrorBody())
		return
	}

	c.JSON(http.StatusOK, contents)
}

// Recent returns content across all platforms published within the window.
func (h *AgentHandler) Recent(c *gin.Context) {
	hours := defaultRecentHours
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, badRequestBody("hours must be a positive integer"))
			return
		}
		hours = parsed
	}

	contents, err := h.service.RecentContent(c.Request.Context(), hours)
	if err != nil {
		h.logger.Error("Failed to load recent content",
			logger.Int("hours", hours),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, internalErrorBody())
		return
	}

	c.JSON(http.StatusOK, contents)
}

// Health reports service liveness.
func (h *AgentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"service":   "AI Social Media Agent",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Platforms lists the supported platform keys with usage hints.
func (h *AgentHandler) Platforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"platforms": h.service.Platforms(),
		"description": gin.H{
			models.PlatformBilibili: "Video platform - provide user ID or space.bilibili.com/[ID]",
			models.PlatformDouyin:   "Short video platform - provide user URL or @username",
			models.PlatformWeibo:    "Microblogging platform - provide user ID or profile URL",
		},
	})
}

func badRequestBody(message string) gin.H {
	return gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
		"status":    http.StatusBadRequest,
		"error":     "Bad Request",
		"message":   message,
	}
}

func validationErrorBody(errs validator.ValidationErrors) gin.H {
	fieldErrors := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		fieldErrors[fieldErr.Field()] = fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
	}
	return gin.H{
		"timestamp":   time.Now().Format(time.RFC3339),
		"status":      http.StatusBadRequest,
		"error":       "Validation Failed",
		"fieldErrors": fieldErrors,
	}
}

func internalErrorBody() gin.H {
	return gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
		"status":    http.StatusInternalServerError,
		"error":     "Internal Server Error",
		"message":   "An unexpected error occurred",
	}
}
