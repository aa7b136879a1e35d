// Package mongodb stores catalog records as MongoDB documents.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const connectTimeout = 10 * time.Second

// Drugs share the legacy collection, whose documents decode as drugDocument. Legacy user
// and admin documents do not (object bookmarks, numeric phone numbers, plaintext
// passwords), so accounts live in their own collections.
const (
	usersCollection  = "catalog_users"
	adminsCollection = "catalog_admins"
	drugsCollection  = "drugdatas"
)

// caseInsensitive is shared by the drug name index and lookups so queries can use the index.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// Store provides MongoDB-backed persistence.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	admins *mongo.Collection
	drugs  *mongo.Collection
}

// NewStore connects, pings and ensures the unique indexes exist.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client: client,
		users:  db.Collection(usersCollection),
		admins: db.Collection(adminsCollection),
		drugs:  db.Collection(drugsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	if _, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{unique("email"), unique("username")}); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	if _, err := s.admins.Indexes().CreateOne(ctx, unique("email")); err != nil {
		return fmt.Errorf("create admin indexes: %w", err)
	}
	drugName := mongo.IndexModel{
		Keys:    bson.D{{Key: "drugName", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
	}
	if _, err := s.drugs.Indexes().CreateOne(ctx, drugName); err != nil {
		return fmt.Errorf("create drug indexes: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return storage.ErrAlreadyExists
	default:
		return err
	}
}
