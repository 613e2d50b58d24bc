package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/services"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type IdeaHandler struct {
	ideaService services.IdeaService
}

func NewIdeaHandler(ideaService services.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

type createIdeaRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Complexity  string `json:"complexity"`
}

func (ih *IdeaHandler) parseComplexity(c *gin.Context, raw string) (types.IdeaComplexity, bool) {
	if raw == "" {
		return "", true
	}
	complexity, ok := types.ParseIdeaComplexity(raw)
	if !ok {
		RespondMessage(c, http.StatusBadRequest, "complexity must be one of LOW, MEDIUM, HIGH")
		return "", false
	}
	return complexity, true
}

func (ih *IdeaHandler) PostIdea(c *gin.Context) {
	var req createIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	complexity, ok := ih.parseComplexity(c, req.Complexity)
	if !ok {
		return
	}
	idea, err := ih.ideaService.CreateIdea(c.Request.Context(), req.Title, req.Description, complexity)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, idea)
}

func (ih *IdeaHandler) PostDraft(c *gin.Context) {
	var req createIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	complexity, ok := ih.parseComplexity(c, req.Complexity)
	if !ok {
		return
	}
	draft, err := ih.ideaService.CreateDraft(c.Request.Context(), req.Title, req.Description, complexity)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, draft)
}

type updateDraftRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Version     *int   `json:"version" binding:"required"`
}

func (ih *IdeaHandler) PutDraft(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req updateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	idea, err := ih.ideaService.UpdateDraft(c.Request.Context(), id, req.Title, req.Description, *req.Version)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, idea)
}

type publishDraftRequest struct {
	Version *int `json:"version" binding:"required"`
}

func (ih *IdeaHandler) PublishDraft(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req publishDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	idea, err := ih.ideaService.PublishDraft(c.Request.Context(), id, *req.Version)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, idea)
}

type patchIdeaStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Version *int   `json:"version" binding:"required"`
}

func (ih *IdeaHandler) PatchStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req patchIdeaStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	status, valid := types.ParseIdeaStatus(req.Status)
	if !valid {
		RespondMessage(c, http.StatusBadRequest, "status is not a recognized idea status")
		return
	}
	idea, err := ih.ideaService.UpdateStatus(c.Request.Context(), id, status, *req.Version)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, idea)
}

func (ih *IdeaHandler) GetIdeas(c *gin.Context) {
	ideas, err := ih.ideaService.ListPublished(c.Request.Context())
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, ideas, len(ideas))
}

func (ih *IdeaHandler) GetAllIdeas(c *gin.Context) {
	ideas, err := ih.ideaService.ListAll(c.Request.Context())
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, ideas, len(ideas))
}

func (ih *IdeaHandler) GetDrafts(c *gin.Context) {
	drafts, err := ih.ideaService.ListDrafts(c.Request.Context())
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, drafts, len(drafts))
}

func (ih *IdeaHandler) GetIdea(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	idea, err := ih.ideaService.GetIdea(c.Request.Context(), id)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, idea)
}

func (ih *IdeaHandler) DeleteIdea(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := ih.ideaService.DeleteIdea(c.Request.Context(), id); err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondMessage(c, http.StatusOK, "Idea deleted")
}
