package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

// AddPost accepts a multipart form: userid, caption, tags (a JSON
// array), and one or more images[] files. Images are stored through the
// uploader and the post is appended to the owner's document.
func (h *Handler) AddPost(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to parse form data"})
		return
	}

	ownerID := c.PostForm("userid")
	caption := c.PostForm("caption")

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "tags must be a JSON array"})
			return
		}
	}

	form := c.Request.MultipartForm
	var images []string
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read image"})
			return
		}
		url, err := h.Uploader.Upload(c.Request.Context(), file, header.Filename)
		file.Close()
		if err != nil {
			fail(c, err)
			return
		}
		images = append(images, url)
	}

	post, err := h.Posts.Create(c.Request.Context(), ownerID, caption, tags, images)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

// DisplayPosts serves the paginated feed; leaderboard=true switches the
// sort to like count.
func (h *Handler) DisplayPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		fail(c, errs.New(errs.Validation, "page must be a number"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil {
		fail(c, errs.New(errs.Validation, "limit must be a number"))
		return
	}

	mode := models.SortRecent
	if c.Query("leaderboard") == "true" {
		mode = models.SortLeaderboard
	}

	result, err := h.Posts.List(c.Request.Context(), page, limit, mode)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"totalDocs":  result.TotalDocs,
		"results":    result.Results,
	})
}
