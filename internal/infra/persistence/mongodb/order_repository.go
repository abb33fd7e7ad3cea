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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepository struct {
	c *mongo.Collection
}

// NewOrderRepository creates an OrderRepository over the orders collection.
func NewOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &orderRepository{c: db.Collection(constants.CollectionOrders)}
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var order entity.Order
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *orderRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{"email": email}, nil)
}

func (r *orderRepository) FindRecentByEmail(ctx context.Context, email string, limit int64) ([]*entity.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	return r.find(ctx, bson.M{"email": email}, opts)
}

func (r *orderRepository) FindDeliveredByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{"email": email, "status": entity.OrderStatusDelivered}, nil)
}

func (r *orderRepository) FindByLibrarian(ctx context.Context, librarianEmail string) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{"librarian_email": librarianEmail}, nil)
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	order.ID = primitive.NewObjectID()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	if _, err := r.c.InsertOne(ctx, order); err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error {
	result, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to update order status")
	}
	if result.MatchedCount == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// MarkPaid flips payment and status in a single document update so the two
// fields can never be observed half-written.
func (r *orderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error {
	result, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment": entity.PaymentStatePaid, "status": status}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to mark order paid")
	}
	if result.MatchedCount == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) DeleteByBookID(ctx context.Context, bookID string) (int64, error) {
	result, err := r.c.DeleteMany(ctx, bson.M{"bookId": bookID})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete orders by book")
	}

	return result.DeletedCount, nil
}

func (r *orderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Order, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.c.Find(ctx, filter, opts)
	} else {
		cursor, err = r.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	var orders []*entity.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "failed to decode orders")
	}

	return orders, nil
}
