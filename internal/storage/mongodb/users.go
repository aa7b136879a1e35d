package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

// CreateUser inserts a user document.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	doc := userDocument{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Bookmarks:    []string{},
		CreatedAt:    time.Now().UTC(),
	}
	res, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return models.User{}, translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.model(), nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.User{}, translate(err)
	}
	return doc.model(), nil
}

// AddBookmark pushes drugName only when it is not already in the list.
func (s *Store) AddBookmark(ctx context.Context, username, drugName string) ([]string, error) {
	filter := bson.M{"username": username, "bookmarks": bson.M{"$ne": drugName}}
	update := bson.M{"$push": bson.M{"bookmarks": drugName}}

	var doc userDocument
	err := s.users.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, findErr := s.FindByUsername(ctx, username); findErr != nil {
			return nil, findErr
		}
		return nil, storage.ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return doc.model().Bookmarks, nil
}

// RemoveBookmark pulls drugName; a missing user or bookmark is ErrNotFound.
func (s *Store) RemoveBookmark(ctx context.Context, username, drugName string) ([]string, error) {
	filter := bson.M{"username": username, "bookmarks": drugName}
	update := bson.M{"$pull": bson.M{"bookmarks": drugName}}

	var doc userDocument
	if err := s.users.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.model().Bookmarks, nil
}

// RenameUser sets a new username; the unique index rejects taken names.
func (s *Store) RenameUser(ctx context.Context, currentUsername, newUsername string) (models.User, error) {
	filter := bson.M{"username": currentUsername}
	update := bson.M{"$set": bson.M{"username": newUsername}}

	var doc userDocument
	if err := s.users.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&doc); err != nil {
		return models.User{}, translate(err)
	}
	return doc.model(), nil
}

// UpdatePassword overwrites the stored hash.
func (s *Store) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"username": username}, bson.M{"$set": bson.M{"passwordHash": passwordHash}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
