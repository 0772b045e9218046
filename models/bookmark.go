package models

import "time"

// BookmarkEntry is embedded in the bookmarking user's document. PostID is
// a weak reference: the referenced post may no longer resolve, and the
// entry never owns it.
type BookmarkEntry struct {
	PostID  string    `bson:"postId" json:"postId"`
	Title   string    `bson:"title" json:"title"`
	Snippet string    `bson:"snippet" json:"snippet"`
	SavedAt time.Time `bson:"savedAt" json:"savedAt"`
}

// BookmarkItem is what a client submits when saving a bookmark. Field
// names follow the original wire contract.
type BookmarkItem struct {
	PostID  string `json:"id" binding:"required"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// BookmarkView is a saved entry augmented, where resolvable, with the
// live post. Resolved is false when the weak reference no longer points
// at anything, in which case the saved title/snippet are all there is.
type BookmarkView struct {
	PostID   string    `json:"id"`
	Title    string    `json:"title"`
	Snippet  string    `json:"snippet"`
	SavedAt  time.Time `json:"savedAt"`
	Resolved bool      `json:"resolved"`

	Username string    `json:"username,omitempty"`
	Caption  string    `json:"caption,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Images   []string  `json:"images,omitempty"`
	Likes    int64     `json:"likes,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}
