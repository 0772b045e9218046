package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddComment appends a comment to a post. Query parameter names follow
// the original wire contract.
func (h *Handler) AddComment(c *gin.Context) {
	authorID := c.Query("Userid")
	postID := c.Query("postid")

	var req struct {
		Comment  string `json:"comment" binding:"required"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "comment is required"})
		return
	}

	comment, err := h.Comments.Add(c.Request.Context(), postID, authorID, req.Username, req.Comment)
	if err != nil {
		fail(c, err)
		return
	}

	if h.Notifier != nil {
		h.Notifier.CommentAdded(postID, comment.AuthorName, comment.Text)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "successfully added comment in post"})
}

// RemoveComment deletes a comment, author-only.
func (h *Handler) RemoveComment(c *gin.Context) {
	requesterID := c.Query("Userid")
	postID := c.Query("Postid")
	commentID := c.Query("Commentid")

	if err := h.Comments.Remove(c.Request.Context(), postID, commentID, requesterID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment removed successfully"})
}

// DisplayComments lists a post's comments, oldest first.
func (h *Handler) DisplayComments(c *gin.Context) {
	postID := c.Query("postid")

	comments, err := h.Comments.List(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}
