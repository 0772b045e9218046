package store

import (
	"strings"

	"github.com/MJS022423/GlamURe/models"
)

// Shared fallbacks, matching what the front end expects when a field is
// missing on an old document.
const (
	fallbackAvatar = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"
	fallbackImage  = "https://via.placeholder.com/400"
	fallbackTag    = "Unisex"
	fallbackStyle  = "Casual"
)

// styleSet is the set of style/category tags the leaderboard groups by.
var styleSet = map[string]bool{
	"Casual":     true,
	"Formal":     true,
	"Streetwear": true,
	"Vintage":    true,
	"Chic":       true,
	"Sporty":     true,
	"Bohemian":   true,
}

// normalizeTags trims, drops empties and duplicates, and falls back to
// the default tag when nothing usable remains.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return []string{fallbackTag}
	}
	return out
}

// normalizeImages drops empty references and falls back to a placeholder
// so a post always renders.
func normalizeImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	if len(out) == 0 {
		return []string{fallbackImage}
	}
	return out
}

// styleOf picks the post's declared style tag: the first tag in the
// known style set, else the first tag, else the default.
func styleOf(tags []string) string {
	for _, t := range tags {
		if styleSet[t] {
			return t
		}
	}
	if len(tags) > 0 {
		return tags[0]
	}
	return fallbackStyle
}

// formatPost projects an embedded post plus its owner into the read
// model served to clients.
func formatPost(username, avatar string, p models.Post) models.FeedPost {
	if username == "" {
		username = "Unknown User"
	}
	if avatar == "" {
		avatar = fallbackAvatar
	}
	comments := p.Comments
	if comments == nil {
		comments = []models.Comment{}
	}
	return models.FeedPost{
		ID:        p.PostID,
		Username:  username,
		Avatar:    avatar,
		Caption:   p.Caption,
		Tags:      normalizeTags(p.Tags),
		Images:    normalizeImages(p.Images),
		Likes:     p.LikeCount,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}
