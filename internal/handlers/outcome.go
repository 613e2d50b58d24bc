package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/services"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type OutcomeHandler struct {
	outcomeService services.OutcomeService
}

func NewOutcomeHandler(outcomeService services.OutcomeService) *OutcomeHandler {
	return &OutcomeHandler{outcomeService: outcomeService}
}

type createOutcomeRequest struct {
	ExperimentID *int   `json:"experimentId" binding:"required"`
	Result       string `json:"result" binding:"required"`
	Notes        string `json:"notes"`
}

func (oh *OutcomeHandler) PostOutcome(c *gin.Context) {
	var req createOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, "experimentId and result are required")
		return
	}
	result, valid := types.ParseOutcomeResult(req.Result)
	if !valid {
		RespondMessage(c, http.StatusBadRequest, "result must be one of Success, Mixed, Failed")
		return
	}
	outcome, err := oh.outcomeService.CreateOutcome(c.Request.Context(), *req.ExperimentID, result, req.Notes)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, outcome)
}

func (oh *OutcomeHandler) GetOutcomes(c *gin.Context) {
	outcomes, err := oh.outcomeService.ListOutcomes(c.Request.Context())
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, outcomes, len(outcomes))
}

func (oh *OutcomeHandler) GetOutcomesByExperiment(c *gin.Context) {
	experimentID, ok := ParamID(c, "experimentId")
	if !ok {
		return
	}
	outcomes, err := oh.outcomeService.ListByExperiment(c.Request.Context(), experimentID)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, outcomes, len(outcomes))
}

type updateOutcomeResultRequest struct {
	Result string `json:"result" binding:"required"`
}

func (oh *OutcomeHandler) PatchOutcomeResult(c *gin.Context) {
	experimentID, ok := ParamID(c, "experimentId")
	if !ok {
		return
	}
	var req updateOutcomeResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	result, valid := types.ParseOutcomeResult(req.Result)
	if !valid {
		RespondMessage(c, http.StatusBadRequest, "result must be one of Success, Mixed, Failed")
		return
	}
	outcome, err := oh.outcomeService.UpdateResultForExperiment(c.Request.Context(), experimentID, result)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, outcome)
}
