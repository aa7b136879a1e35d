package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hongminglow/drug-catalog-be/internal/models"
)

// CreateDrug inserts a drug document.
func (s *Store) CreateDrug(ctx context.Context, drug models.Drug) (models.Drug, error) {
	doc := newDrugDocument(drug)
	res, err := s.drugs.InsertOne(ctx, doc)
	if err != nil {
		return models.Drug{}, translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.model(), nil
}

// FindDrugByName matches drugName exactly under the case-insensitive collation.
func (s *Store) FindDrugByName(ctx context.Context, drugName string) (models.Drug, error) {
	var doc drugDocument
	opts := options.FindOne().SetCollation(caseInsensitive)
	if err := s.drugs.FindOne(ctx, bson.M{"drugName": drugName}, opts).Decode(&doc); err != nil {
		return models.Drug{}, translate(err)
	}
	return doc.model(), nil
}
