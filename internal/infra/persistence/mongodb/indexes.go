package mongodb

import (
	"context"
	"strings"

	"readreach/internal/domain/constants"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes is called at startup; index creation is idempotent. The two
// unique indexes are load-bearing: users.email backs find-or-create under
// concurrent first logins, and payments.transactionId is what turns a
// duplicated completion notification into a detectable conflict instead of
// a silent double insert.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrders(ctx, db); err != nil {
		problems = append(problems, "orders: "+err.Error())
	}
	if err := ensurePayments(ctx, db); err != nil {
		problems = append(problems, "payments: "+err.Error())
	}
	if err := ensureBooks(ctx, db); err != nil {
		problems = append(problems, "books: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(constants.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return err
}

func ensureOrders(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(constants.CollectionOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "librarian_email", Value: 1}}},
		{Keys: bson.D{{Key: "bookId", Value: 1}}},
	})

	return err
}

func ensurePayments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(constants.CollectionPayments).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transactionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})

	return err
}

func ensureBooks(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(constants.CollectionBooks).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "published_status", Value: 1}}},
		{Keys: bson.D{{Key: "librarian_email", Value: 1}}},
		{Keys: bson.D{{Key: "addedToLibraryDate", Value: -1}}},
	})

	return err
}
