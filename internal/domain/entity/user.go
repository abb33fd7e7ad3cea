package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an application account. One is created on first sign-in against
// the identity provider; the email is the unique application-level key.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL  string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VerifiedIdentity is the result of validating a bearer credential against
// the identity provider. It lives for exactly one request and is never
// persisted.
type VerifiedIdentity struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
