package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongminglow/drug-catalog-be/internal/models"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	Bookmarks    []string           `bson:"bookmarks"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d userDocument) model() models.User {
	bookmarks := d.Bookmarks
	if bookmarks == nil {
		bookmarks = []string{}
	}
	return models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Bookmarks:    bookmarks,
		CreatedAt:    d.CreatedAt,
	}
}

type adminDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	ReferralID   string             `bson:"referralId"`
	ReferredID   string             `bson:"referredId,omitempty"`
	MyReferrals  string             `bson:"myReferrals,omitempty"`
	PhoneNumber  string             `bson:"phoneNumber"`
	Bookmarks    []string           `bson:"bookmarks"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d adminDocument) model() models.Admin {
	bookmarks := d.Bookmarks
	if bookmarks == nil {
		bookmarks = []string{}
	}
	return models.Admin{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		ReferralID:   d.ReferralID,
		ReferredID:   d.ReferredID,
		MyReferrals:  d.MyReferrals,
		PhoneNumber:  d.PhoneNumber,
		Bookmarks:    bookmarks,
		CreatedAt:    d.CreatedAt,
	}
}

type drugDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	DrugName         string             `bson:"drugName"`
	Description      string             `bson:"description"`
	Uses             []string           `bson:"uses"`
	Indications      []string           `bson:"indications"`
	SideEffects      []string           `bson:"sideEffects"`
	Warnings         []string           `bson:"warnings"`
	Photo            []byte             `bson:"photo,omitempty"`
	PhotoContentType string             `bson:"photoContentType,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
}

func newDrugDocument(d models.Drug) drugDocument {
	d.Normalize()
	return drugDocument{
		DrugName:         d.DrugName,
		Description:      d.Description,
		Uses:             d.Uses,
		Indications:      d.Indications,
		SideEffects:      d.SideEffects,
		Warnings:         d.Warnings,
		Photo:            d.Photo,
		PhotoContentType: d.PhotoContentType,
		CreatedAt:        time.Now().UTC(),
	}
}

func (d drugDocument) model() models.Drug {
	m := models.Drug{
		ID:               d.ID.Hex(),
		DrugName:         d.DrugName,
		Description:      d.Description,
		Uses:             d.Uses,
		Indications:      d.Indications,
		SideEffects:      d.SideEffects,
		Warnings:         d.Warnings,
		Photo:            d.Photo,
		PhotoContentType: d.PhotoContentType,
		CreatedAt:        d.CreatedAt,
	}
	m.Normalize()
	return m
}
