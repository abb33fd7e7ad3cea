package mongodb

import (
	"context"
	"time"

	"readreach/internal/domain/constants"
	"readreach/internal/domain/entity"
	"readreach/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type paymentRepository struct {
	c *mongo.Collection
}

// NewPaymentRepository creates a PaymentRepository over the payments
// collection.
func NewPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &paymentRepository{c: db.Collection(constants.CollectionPayments)}
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	var payment entity.Payment
	if err := r.c.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find payment by transaction id")
	}

	return &payment, nil
}

func (r *paymentRepository) FindAll(ctx context.Context) ([]*entity.Payment, error) {
	return r.find(ctx, bson.M{})
}

func (r *paymentRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	return r.find(ctx, bson.M{"email": email})
}

// Create inserts the payment record. A duplicate key on transactionId means
// another delivery of the same notification won the insert; that is mapped
// to ErrDuplicateTransaction so the lifecycle manager can absorb it as an
// idempotent success.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	payment.ID = primitive.NewObjectID()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	if _, err := r.c.InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateTransaction
		}

		return errors.Wrap(err, "failed to insert payment")
	}

	return nil
}

func (r *paymentRepository) find(ctx context.Context, filter bson.M) ([]*entity.Payment, error) {
	cursor, err := r.c.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	var payments []*entity.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, errors.Wrap(err, "failed to decode payments")
	}

	return payments, nil
}
