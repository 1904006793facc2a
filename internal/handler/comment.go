package handler

import (
	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/upstream"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *upstream.CommentsClient
}

func NewCommentHandler(comments *upstream.CommentsClient) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) List(c *gin.Context) {
	limit, appErr := intQuery(c, "limit", defaultLimit)
	if appErr != nil {
		fail(c, appErr)
		return
	}
	offset, appErr := intQuery(c, "offset", defaultOffset)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), model.CommentQuery{
		Limit:            limit,
		Offset:           offset,
		Order:            c.Query("order"),
		Ascending:        boolQuery(c, "ascending"),
		ParentEntityType: c.Query("parent_entity_type"),
		ParentEntityID:   c.Query("parent_entity_id"),
		GetPositions:     boolQuery(c, "get_positions"),
		HoldersOnly:      boolQuery(c, "holders_only"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"comments": comments, "count": len(comments)})
}
