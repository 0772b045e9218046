package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the aggregate root of the users collection. It owns its
// embedded posts and bookmark list; likes live in their own collection.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	DisplayName    string             `bson:"displayName" json:"displayName"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"passwordHash" json:"-"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
	Role           string             `bson:"role" json:"role"`
	Posts          []Post             `bson:"posts" json:"posts"`
	Bookmarks      []BookmarkEntry    `bson:"bookmarks" json:"bookmarks"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`
}
