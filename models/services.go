package models

import "context"

// PostService creates posts and serves the flattened, paginated feed.
type PostService interface {
	Create(ctx context.Context, ownerID, caption string, tags, images []string) (*FeedPost, error)
	List(ctx context.Context, page, pageSize int, mode SortMode) (*PostPage, error)
}

// LikeService flips a user's like state on a post. Calling Toggle twice
// in sequence returns to the original state and count.
type LikeService interface {
	Toggle(ctx context.Context, postID, userID string) (*LikeResult, error)
}

// BookmarkService manages a user's embedded bookmark list.
type BookmarkService interface {
	// Save appends a bookmark entry. It reports saved=false, with no
	// error, when the post was already bookmarked.
	Save(ctx context.Context, userID string, item BookmarkItem) (saved bool, err error)
	Remove(ctx context.Context, userID, postID string) error
	List(ctx context.Context, userID string) ([]BookmarkView, error)
}

// CommentService manages a post's embedded comment list.
type CommentService interface {
	Add(ctx context.Context, postID, authorID, authorName, text string) (*Comment, error)
	// Remove deletes a comment, but only when requesterID matches the
	// comment's author.
	Remove(ctx context.Context, postID, commentID, requesterID string) error
	List(ctx context.Context, postID string) ([]Comment, error)
}

// LeaderboardService ranks posts by like count.
type LeaderboardService interface {
	Top(ctx context.Context, page, pageSize int) ([]LeaderboardRow, error)
}

// UserService covers the account operations the auth endpoints need,
// plus lookup of the authenticated caller.
type UserService interface {
	Register(ctx context.Context, username, displayName, email, passwordHash string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByID(ctx context.Context, id string) (*User, error)
}
