package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoroom/echoroom-backend/internal/requestdata"
	"github.com/echoroom/echoroom-backend/internal/services"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (ch *CommentHandler) GetComments(c *gin.Context) {
	ideaID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	comments, err := ch.commentService.ListComments(c.Request.Context(), ideaID)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondList(c, comments, len(comments))
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (ch *CommentHandler) PostComment(c *gin.Context) {
	ideaID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	// Auth is optional here: unauthenticated commenters post as Anonymous.
	userID := ""
	username := ""
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		userID = rd.UserID.String()
		username = rd.Username
	}

	comment, err := ch.commentService.AddComment(c.Request.Context(), ideaID, userID, username, req.Content)
	if err != nil {
		RespondWorkflowError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, comment)
}
