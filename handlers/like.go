package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ToggleLike flips the caller's like on a post. The caller's identity
// comes from the auth middleware, never from the request body.
func (h *Handler) ToggleLike(c *gin.Context) {
	postID := c.Query("postId")
	userID := c.GetString("userId")

	result, err := h.Likes.Toggle(c.Request.Context(), postID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	if result.Liked && h.Notifier != nil {
		liker := ""
		if h.Users != nil {
			if user, err := h.Users.ByID(c.Request.Context(), userID); err == nil {
				liker = user.Username
			}
		}
		h.Notifier.PostLiked(postID, liker)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likes": result.Likes})
}
