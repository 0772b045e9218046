package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MJS022423/GlamURe/database"
	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

// CommentStore appends, removes and lists the comments embedded in a
// post. Removal is author-only, enforced inside the $pull match itself.
type CommentStore struct {
	db *database.DB
}

func NewCommentStore(db *database.DB) *CommentStore {
	return &CommentStore{db: db}
}

var _ models.CommentService = &CommentStore{}

// Add appends a comment with a fresh id and the current timestamp.
func (s *CommentStore) Add(ctx context.Context, postID, authorID, authorName, text string) (*models.Comment, error) {
	if postID == "" || authorID == "" {
		return nil, errs.New(errs.Validation, "post ID and author ID are required")
	}
	if text == "" {
		return nil, errs.New(errs.Validation, "comment text is required")
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	comment := models.Comment{
		CommentID:  database.NewID(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}

	res, err := s.db.Users().UpdateOne(ctx,
		bson.M{"posts.postId": postID},
		bson.M{"$push": bson.M{"posts.$.comments": comment}},
	)
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to add comment", err)
	}
	if res.MatchedCount == 0 {
		return nil, errs.New(errs.NotFound, "post not found")
	}
	return &comment, nil
}

// Remove deletes the comment only when requesterID is its author. The
// author check rides inside the $pull filter; when nothing was pulled a
// follow-up read splits "no such comment" from "not yours".
func (s *CommentStore) Remove(ctx context.Context, postID, commentID, requesterID string) error {
	if postID == "" || commentID == "" || requesterID == "" {
		return errs.New(errs.Validation, "post ID, comment ID and requester ID are required")
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.db.Users().UpdateOne(ctx,
		bson.M{"posts.postId": postID},
		bson.M{"$pull": bson.M{"posts.$.comments": bson.M{
			"commentId": commentID,
			"authorId":  requesterID,
		}}},
	)
	if err != nil {
		return errs.Wrap(errs.Persistence, "failed to remove comment", err)
	}
	if res.MatchedCount == 0 {
		return errs.New(errs.NotFound, "post not found")
	}
	if res.ModifiedCount > 0 {
		return nil
	}

	comments, err := s.List(ctx, postID)
	if err != nil {
		return err
	}
	for _, c := range comments {
		if c.CommentID == commentID {
			return errs.New(errs.Authorization, "not authorized to remove this comment")
		}
	}
	return errs.New(errs.NotFound, "comment not found")
}

// List returns the post's comments in insertion order, oldest first.
func (s *CommentStore) List(ctx context.Context, postID string) ([]models.Comment, error) {
	if postID == "" {
		return nil, errs.New(errs.Validation, "post ID is required")
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var owner models.User
	err := s.db.Users().FindOne(ctx,
		bson.M{"posts.postId": postID},
		options.FindOne().SetProjection(bson.M{"posts.$": 1}),
	).Decode(&owner)
	if err == mongo.ErrNoDocuments {
		return nil, errs.New(errs.NotFound, "post not found")
	}
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to fetch comments", err)
	}
	if len(owner.Posts) == 0 {
		return nil, errs.New(errs.NotFound, "post not found")
	}

	comments := owner.Posts[0].Comments
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}
