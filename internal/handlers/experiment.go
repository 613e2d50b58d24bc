package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/normalization"
	"github.com/echoroom/echoroom-backend/internal/services"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type ExperimentHandler struct {
	experimentService services.ExperimentService
}

func NewExperimentHandler(experimentService services.ExperimentService) *ExperimentHandler {
	return &ExperimentHandler{experimentService: experimentService}
}

type experimentResponse struct {
	*types.Experiment
	Progress int `json:"progress"`
}

func toExperimentResponse(experiment *types.Experiment) *experimentResponse {
	return &experimentResponse{
		Experiment: experiment,
		Progress:   services.ProgressForStatus(experiment.Status),
	}
}

type createExperimentRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Hypothesis     string `json:"hypothesis" binding:"required"`
	SuccessMetric  string `json:"successMetric" binding:"required"`
	Falsifiability string `json:"falsifiability" binding:"required"`
	Status         string `json:"status" binding:"required"`
	EndDate        string `json:"endDate" binding:"required"`
	LinkedIdeaID   *int   `json:"linkedIdeaId"`
}

func (eh *ExperimentHandler) PostExperiment(c *gin.Context) {
	var req createExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	status, valid := types.ParseExperimentStatus(normalization.ParseStatusLabel(req.Status))
	if !valid {
		RespondMessage(c, http.StatusBadRequest, "status must be one of planned, in-progress, completed")
		return
	}
	experiment, err := eh.experimentService.CreateExperiment(c.Request.Context(), services.CreateExperimentInput{
		Title:          req.Title,
		Description:    req.Description,
		Hypothesis:     req.Hypothesis,
		SuccessMetric:  req.SuccessMetric,
		Falsifiability: req.Falsifiability,
		Status:         status,
		EndDate:        req.EndDate,
		LinkedIdeaID:   req.LinkedIdeaID,
	})
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, toExperimentResponse(experiment))
}

func (eh *ExperimentHandler) GetExperiments(c *gin.Context) {
	experiments, err := eh.experimentService.ListExperiments(c.Request.Context())
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	responses := make([]*experimentResponse, 0, len(experiments))
	for _, experiment := range experiments {
		responses = append(responses, toExperimentResponse(experiment))
	}
	RespondList(c, responses, len(responses))
}

func (eh *ExperimentHandler) GetExperiment(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	experiment, err := eh.experimentService.GetExperiment(c.Request.Context(), id)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, toExperimentResponse(experiment))
}

type updateExperimentRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Hypothesis     *string `json:"hypothesis"`
	SuccessMetric  *string `json:"successMetric"`
	Falsifiability *string `json:"falsifiability"`
	Status         *string `json:"status"`
	EndDate        *string `json:"endDate"`
	LinkedIdeaID   *int    `json:"linkedIdeaId"`
	OutcomeResult  *string `json:"outcomeResult"`
}

func (eh *ExperimentHandler) PutExperiment(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req updateExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	update := services.ExperimentUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Hypothesis:     req.Hypothesis,
		SuccessMetric:  req.SuccessMetric,
		Falsifiability: req.Falsifiability,
		EndDate:        req.EndDate,
		LinkedIdeaID:   req.LinkedIdeaID,
	}
	if req.Status != nil {
		status, valid := types.ParseExperimentStatus(normalization.ParseStatusLabel(*req.Status))
		if !valid {
			RespondMessage(c, http.StatusBadRequest, "status must be one of planned, in-progress, completed")
			return
		}
		update.Status = &status
	}
	if req.OutcomeResult != nil {
		result, valid := types.ParseOutcomeResult(*req.OutcomeResult)
		if !valid {
			RespondMessage(c, http.StatusBadRequest, "outcomeResult must be one of Success, Mixed, Failed")
			return
		}
		update.OutcomeResult = &result
	}

	experiment, err := eh.experimentService.UpdateExperiment(c.Request.Context(), id, update)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, toExperimentResponse(experiment))
}

func (eh *ExperimentHandler) DeleteExperiment(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := eh.experimentService.DeleteExperiment(c.Request.Context(), id); err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondMessage(c, http.StatusOK, "Experiment deleted")
}
