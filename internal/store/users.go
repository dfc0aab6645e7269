package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookcourier/internal/models"
)

// ErrUserExists is returned when an upsert finds an account for the email.
var ErrUserExists = errors.New("user exists")

type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// GetByEmail returns (nil, nil) when no account exists for the email.
func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. A duplicate email reports ErrUserExists,
// whether caught by the pre-check or by the unique index.
func (s *Users) Create(ctx context.Context, user models.User) (string, error) {
	existing, err := s.GetByEmail(ctx, user.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUserExists
	}

	res, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrUserExists
	}
	if err != nil {
		return "", err
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// UpdateProfile sets displayName and photoURL. Returns the matched count.
func (s *Users) UpdateProfile(ctx context.Context, id primitive.ObjectID, displayName, photoURL string) (int64, error) {
	res, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"displayName": displayName,
			"photoURL":    photoURL,
			"updatedAt":   time.Now(),
		},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
