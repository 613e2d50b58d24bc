package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/services"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type ReflectionHandler struct {
	reflectionService services.ReflectionService
}

func NewReflectionHandler(reflectionService services.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService}
}

type reflectionContextRequest struct {
	EmotionBefore    *int `json:"emotionBefore" binding:"required"`
	ConfidenceBefore *int `json:"confidenceBefore" binding:"required"`
}

type reflectionBreakdownRequest struct {
	WhatHappened  string `json:"whatHappened" binding:"required"`
	WhatWorked    string `json:"whatWorked" binding:"required"`
	WhatDidntWork string `json:"whatDidntWork" binding:"required"`
}

type reflectionGrowthRequest struct {
	LessonLearned string `json:"lessonLearned" binding:"required"`
	NextAction    string `json:"nextAction" binding:"required"`
}

type reflectionResultRequest struct {
	EmotionAfter    *int `json:"emotionAfter" binding:"required"`
	ConfidenceAfter *int `json:"confidenceAfter" binding:"required"`
}

type createReflectionRequest struct {
	OutcomeID    *int                       `json:"outcomeId" binding:"required"`
	Context      reflectionContextRequest   `json:"context" binding:"required"`
	Breakdown    reflectionBreakdownRequest `json:"breakdown" binding:"required"`
	Growth       reflectionGrowthRequest    `json:"growth" binding:"required"`
	Result       reflectionResultRequest    `json:"result" binding:"required"`
	Tags         []string                   `json:"tags"`
	EvidenceLink string                     `json:"evidenceLink"`
	Visibility   string                     `json:"visibility" binding:"required"`
}

func inRange(value, low, high int) bool {
	return value >= low && value <= high
}

func (rh *ReflectionHandler) PostReflection(c *gin.Context) {
	var req createReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	if !inRange(*req.Context.EmotionBefore, 1, 5) || !inRange(*req.Result.EmotionAfter, 1, 5) {
		RespondMessage(c, http.StatusBadRequest, "emotion ratings must be between 1 and 5")
		return
	}
	if !inRange(*req.Context.ConfidenceBefore, 1, 10) || !inRange(*req.Result.ConfidenceAfter, 1, 10) {
		RespondMessage(c, http.StatusBadRequest, "confidence ratings must be between 1 and 10")
		return
	}
	visibility, valid := types.ParseReflectionVisibility(req.Visibility)
	if !valid {
		RespondMessage(c, http.StatusBadRequest, "visibility must be private or public")
		return
	}

	reflection, err := rh.reflectionService.CreateReflection(c.Request.Context(), services.CreateReflectionInput{
		OutcomeID: *req.OutcomeID,
		Context: types.ReflectionContext{
			EmotionBefore:    *req.Context.EmotionBefore,
			ConfidenceBefore: *req.Context.ConfidenceBefore,
		},
		Breakdown: types.ReflectionBreakdown{
			WhatHappened:  req.Breakdown.WhatHappened,
			WhatWorked:    req.Breakdown.WhatWorked,
			WhatDidntWork: req.Breakdown.WhatDidntWork,
		},
		Growth: types.ReflectionGrowth{
			LessonLearned: req.Growth.LessonLearned,
			NextAction:    req.Growth.NextAction,
		},
		Result: types.ReflectionResult{
			EmotionAfter:    *req.Result.EmotionAfter,
			ConfidenceAfter: *req.Result.ConfidenceAfter,
		},
		Tags:         req.Tags,
		EvidenceLink: req.EvidenceLink,
		Visibility:   visibility,
	})
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, reflection)
}

func (rh *ReflectionHandler) GetReflections(c *gin.Context) {
	reflections, err := rh.reflectionService.ListReflections(c.Request.Context())
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, reflections, len(reflections))
}

func (rh *ReflectionHandler) GetReflection(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	reflection, err := rh.reflectionService.GetReflection(c.Request.Context(), id)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, reflection)
}

func (rh *ReflectionHandler) GetReflectionsByOutcome(c *gin.Context) {
	outcomeID, ok := ParamID(c, "outcomeId")
	if !ok {
		return
	}
	reflections, err := rh.reflectionService.ListByOutcome(c.Request.Context(), outcomeID)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, reflections, len(reflections))
}
