package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh 24-character hex object id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed object id.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
