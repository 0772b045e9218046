package models

import "time"

// Post is embedded in exactly one user's posts list. PostID is an opaque
// string unique across all users; likes and bookmarks reference it from
// outside the owning document.
type Post struct {
	PostID    string    `bson:"postId" json:"id"`
	Caption   string    `bson:"caption" json:"caption"`
	Tags      []string  `bson:"tags" json:"tags"`
	Images    []string  `bson:"images" json:"images"`
	LikeCount int64     `bson:"likeCount" json:"likes"`
	Comments  []Comment `bson:"comments" json:"comments"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Comment is embedded in a post's comment list, oldest first.
type Comment struct {
	CommentID  string    `bson:"commentId" json:"id"`
	AuthorID   string    `bson:"authorId" json:"authorId"`
	AuthorName string    `bson:"authorName" json:"username"`
	Text       string    `bson:"text" json:"text"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// FeedPost is the read model served to clients: the embedded post joined
// with its owner's username and avatar.
type FeedPost struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Caption   string    `json:"caption"`
	Tags      []string  `json:"tags"`
	Images    []string  `json:"images"`
	Likes     int64     `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostPage is one page of the flattened feed.
type PostPage struct {
	Results    []FeedPost `json:"results"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	TotalDocs  int        `json:"totalDocs"`
}

// SortMode selects the feed ordering.
type SortMode string

const (
	// SortRecent orders by createdAt descending.
	SortRecent SortMode = "recent"
	// SortLeaderboard orders by like count descending, ties broken by
	// createdAt descending, and drops posts with no likes.
	SortLeaderboard SortMode = "leaderboard"
)

// LeaderboardRow is one ranked entry of the leaderboard view.
type LeaderboardRow struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
	LikeCount   int64  `json:"likeCount"`
}
