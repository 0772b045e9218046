package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MJS022423/GlamURe/models"
)

// SaveBookmark bookmarks a post for the user. Saving an already-saved
// post is a no-op, not an error.
func (h *Handler) SaveBookmark(c *gin.Context) {
	userID := c.Query("userId")

	var req struct {
		NewItem models.BookmarkItem `json:"newItem" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid post data"})
		return
	}

	saved, err := h.Bookmarks.Save(c.Request.Context(), userID, req.NewItem)
	if err != nil {
		fail(c, err)
		return
	}
	if !saved {
		c.JSON(http.StatusOK, gin.H{"message": "Post already saved"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post bookmarked successfully"})
}

// RemoveBookmark deletes the entry; a missing bookmark is a 404.
func (h *Handler) RemoveBookmark(c *gin.Context) {
	userID := c.Query("userId")

	var req struct {
		PostID string `json:"postId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "postId is required"})
		return
	}

	if err := h.Bookmarks.Remove(c.Request.Context(), userID, req.PostID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bookmark removed"})
}

// DisplayBookmarks lists the user's bookmarks joined best-effort with
// the live posts.
func (h *Handler) DisplayBookmarks(c *gin.Context) {
	userID := c.Query("userId")

	bookmarks, err := h.Bookmarks.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookmarks": bookmarks})
}
