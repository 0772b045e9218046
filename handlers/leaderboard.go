package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MJS022423/GlamURe/errs"
)

// DisplayLeaderboard serves the ranked view over the feed's like
// counters.
func (h *Handler) DisplayLeaderboard(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		fail(c, errs.New(errs.Validation, "page must be a number"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		fail(c, errs.New(errs.Validation, "limit must be a number"))
		return
	}

	rows, err := h.Board.Top(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": rows})
}
