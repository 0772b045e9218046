package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MJS022423/GlamURe/database"
	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

// UserStore covers account creation and lookup for the auth endpoints.
type UserStore struct {
	db *database.DB
}

func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

var _ models.UserService = &UserStore{}

// Register inserts a new user. The unique email index turns a taken
// address into a Duplicate error instead of relying on a prior read.
func (s *UserStore) Register(ctx context.Context, username, displayName, email, passwordHash string) (*models.User, error) {
	if username == "" || email == "" || passwordHash == "" {
		return nil, errs.New(errs.Validation, "username, email and password are required")
	}
	if displayName == "" {
		displayName = username
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	user := models.User{
		Username:     username,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "member",
		Posts:        []models.Post{},
		Bookmarks:    []models.BookmarkEntry{},
		CreatedAt:    time.Now().Unix(),
	}

	res, err := s.db.Users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return nil, errs.New(errs.Duplicate, "email already in use")
	}
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to create user", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return &user, nil
}

// ByID resolves a user from an opaque identifier.
func (s *UserStore) ByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := database.ObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var user models.User
	err = s.db.Users().FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errs.New(errs.NotFound, "user not found")
	}
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to fetch user", err)
	}
	return &user, nil
}

// ByEmail looks a user up for login.
func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errs.New(errs.Validation, "email is required")
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errs.New(errs.NotFound, "user not found")
	}
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to fetch user", err)
	}
	return &user, nil
}
