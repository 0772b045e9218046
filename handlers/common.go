package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/middleware"
	"github.com/MJS022423/GlamURe/models"
	"github.com/MJS022423/GlamURe/uploads"
)

// Notifier delivers out-of-band notifications. *notify.Notifier
// satisfies it.
type Notifier interface {
	PostLiked(postID, likerName string)
	CommentAdded(postID, authorName, text string)
	PublicKey() string
	Subscribe(ctx context.Context, userID string, sub webpush.Subscription) error
}

// Handler holds the services every endpoint talks to. Everything is
// injected; no handler reaches for a global.
type Handler struct {
	Posts     models.PostService
	Likes     models.LikeService
	Bookmarks models.BookmarkService
	Comments  models.CommentService
	Board     models.LeaderboardService
	Users     models.UserService
	Notifier  Notifier
	Uploader  uploads.ImageUploader
	JWTSecret string
}

// fail translates a service error into the HTTP contract. Persistence
// failures and anything unclassified are logged and masked as a plain
// server error.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*errs.Error); ok {
		switch e.Kind {
		case errs.Validation:
			status = http.StatusBadRequest
		case errs.NotFound:
			status = http.StatusNotFound
		case errs.Authorization:
			status = http.StatusForbidden
		case errs.Duplicate:
			status = http.StatusConflict
		}
		if status != http.StatusInternalServerError {
			message = e.Public()
		}
	}

	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}

// issueToken signs a 24h bearer token carrying the user id.
func (h *Handler) issueToken(userID string) (string, error) {
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
