package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongminglow/drug-catalog-be/internal/models"
)

// CreateAdmin inserts an admin document.
func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	doc := adminDocument{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		ReferralID:   admin.ReferralID,
		ReferredID:   admin.ReferredID,
		MyReferrals:  admin.MyReferrals,
		PhoneNumber:  admin.PhoneNumber,
		Bookmarks:    []string{},
		CreatedAt:    time.Now().UTC(),
	}
	res, err := s.admins.InsertOne(ctx, doc)
	if err != nil {
		return models.Admin{}, translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.model(), nil
}

// FindAdminByEmail fetches an admin by email address.
func (s *Store) FindAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	var doc adminDocument
	if err := s.admins.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return models.Admin{}, translate(err)
	}
	return doc.model(), nil
}
