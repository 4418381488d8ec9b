package handler

import (
	appcatalog "github.com/campusmarket/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles comments on listings
type CommentHandler struct {
	BaseHandler
	comments *appcatalog.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *appcatalog.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Add adds a comment to a listing
func (h *CommentHandler) Add(c *gin.Context) {
	author, ok := h.currentAccountID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Listing")
	if !ok {
		return
	}

	var req appcatalog.AddCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), id, author, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, comment)
}

// Delete removes a comment written by the caller
func (h *CommentHandler) Delete(c *gin.Context) {
	requester, ok := h.currentAccountID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Comment")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id, requester); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DeletedResponse{Deleted: true})
}
