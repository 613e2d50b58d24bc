package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/services"
)

type InsightsHandler struct {
	insightsService services.InsightsService
}

func NewInsightsHandler(insightsService services.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

func (ih *InsightsHandler) GetGraph(c *gin.Context) {
	graph, err := ih.insightsService.BuildGraph(c.Request.Context())
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, graph)
}

type suggestPatternsRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (ih *InsightsHandler) SuggestPatterns(c *gin.Context) {
	var req suggestPatternsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	suggestions, err := ih.insightsService.SuggestPatterns(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, suggestions)
}
