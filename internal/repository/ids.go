package repository

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UUIDScheme identifies postgres rows by random UUIDs
type UUIDScheme struct{}

func (UUIDScheme) NewID() string { return uuid.New().String() }

func (UUIDScheme) Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ObjectIDScheme identifies mongo documents by hex ObjectIDs
type ObjectIDScheme struct{}

func (ObjectIDScheme) NewID() string { return primitive.NewObjectID().Hex() }

func (ObjectIDScheme) Valid(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
