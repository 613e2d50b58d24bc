package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/echoroom/echoroom-backend/internal/requestdata"
	"github.com/echoroom/echoroom-backend/internal/services"
)

type LikeHandler struct {
	likeService services.LikeService
}

func NewLikeHandler(likeService services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (lh *LikeHandler) ToggleLike(c *gin.Context) {
	ideaID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondMessage(c, http.StatusUnauthorized, "authentication required")
		return
	}
	liked, err := lh.likeService.ToggleLike(c.Request.Context(), rd.UserID, ideaID)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{"liked": liked})
}

// GetIdeaLikesBatch resolves like summaries for several ideas at once, for
// feed views: GET /likes?ids=1,2,3.
func (lh *LikeHandler) GetIdeaLikesBatch(c *gin.Context) {
	ideaIDs, err := parseIDList(c.Query("ids"))
	if err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	var currentUserID *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		currentUserID = &rd.UserID
	}
	summaries, err := lh.likeService.GetLikesForIdeas(c.Request.Context(), ideaIDs, currentUserID)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, summaries, len(summaries))
}

func parseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("ids query parameter is required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id < 1 {
			return nil, fmt.Errorf("ids must be a comma-separated list of numeric IDs")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (lh *LikeHandler) GetIdeaLikes(c *gin.Context) {
	ideaID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var currentUserID *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		currentUserID = &rd.UserID
	}
	summary, err := lh.likeService.GetLikesForIdea(c.Request.Context(), ideaID, currentUserID)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusOK, summary)
}
