package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the immutable record of one completed checkout. TransactionID
// is assigned by the payment processor and is unique system-wide; the
// payments collection carries a unique index on it, which is what makes
// duplicate completion notifications safe to replay.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        int64              `bson:"amount" json:"amount"`
	BookName      string             `bson:"bookName,omitempty" json:"bookName,omitempty"`
	Email         string             `bson:"email" json:"email"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
