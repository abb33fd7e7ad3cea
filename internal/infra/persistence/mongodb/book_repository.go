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

type bookRepository struct {
	c *mongo.Collection
}

// NewBookRepository creates a BookRepository over the books collection.
func NewBookRepository(db *mongo.Database) repository.BookRepository {
	return &bookRepository{c: db.Collection(constants.CollectionBooks)}
}

func (r *bookRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Book, error) {
	var book entity.Book
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book")
	}

	return &book, nil
}

func (r *bookRepository) FindPublished(ctx context.Context) ([]*entity.Book, error) {
	return r.find(ctx, bson.M{"published_status": entity.PublishedStatusPublished}, nil)
}

func (r *bookRepository) FindLatest(ctx context.Context, limit int64) ([]*entity.Book, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "addedToLibraryDate", Value: -1}}).
		SetLimit(limit)

	return r.find(ctx, bson.M{}, opts)
}

func (r *bookRepository) FindAll(ctx context.Context) ([]*entity.Book, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *bookRepository) FindByLibrarian(ctx context.Context, librarianEmail string) ([]*entity.Book, error) {
	return r.find(ctx, bson.M{"librarian_email": librarianEmail}, nil)
}

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	book.ID = primitive.NewObjectID()
	if book.PublishedStatus == "" {
		book.PublishedStatus = entity.PublishedStatusDraft
	}
	if book.AddedToLibraryDate.IsZero() {
		book.AddedToLibraryDate = time.Now()
	}

	if _, err := r.c.InsertOne(ctx, book); err != nil {
		return errors.Wrap(err, "failed to insert book")
	}

	return nil
}

func (r *bookRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return errors.Wrap(err, "failed to update book")
	}
	if result.MatchedCount == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) UpdatePublishedStatus(ctx context.Context, id primitive.ObjectID, status entity.PublishedStatus) error {
	result, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"published_status": status}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to update published status")
	}
	if result.MatchedCount == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete book")
	}
	if result.DeletedCount == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Book, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.c.Find(ctx, filter, opts)
	} else {
		cursor, err = r.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	var books []*entity.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, errors.Wrap(err, "failed to decode books")
	}

	return books, nil
}
