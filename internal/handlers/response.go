package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/workflow"
)

func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func RespondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": status < 400, "message": message})
}

// RespondWorkflowError maps the workflow error taxonomy onto status codes:
// guard and transition failures are the caller's input problem (400),
// stale-version and duplicate-outcome failures are conflicts (409), missing
// records are 404, anything else is treated as a bad request.
func RespondWorkflowError(c *gin.Context, err error) {
	var conflictErr *workflow.ConflictError
	if errors.As(err, &conflictErr) {
		RespondMessage(c, http.StatusConflict, conflictErr.Error())
		return
	}
	var duplicateErr *workflow.DuplicateOutcomeError
	if errors.As(err, &duplicateErr) {
		RespondMessage(c, http.StatusConflict, duplicateErr.Error())
		return
	}
	var transitionErr *workflow.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		RespondMessage(c, http.StatusBadRequest, transitionErr.Error())
		return
	}
	var referenceErr *workflow.ReferenceNotFoundError
	if errors.As(err, &referenceErr) {
		RespondMessage(c, http.StatusBadRequest, referenceErr.Error())
		return
	}
	if errors.Is(err, repos.ErrNotFound) {
		RespondMessage(c, http.StatusNotFound, "not found")
		return
	}
	RespondMessage(c, http.StatusBadRequest, err.Error())
}

// ParamID parses a numeric path parameter, answering 400 itself on failure.
func ParamID(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		RespondMessage(c, http.StatusBadRequest, name+" must be a valid numeric ID")
		return 0, false
	}
	return id, true
}
