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

type userRepository struct {
	c *mongo.Collection
}

// NewUserRepository creates a UserRepository over the users collection.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{c: db.Collection(constants.CollectionUsers)}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return &user, nil
}

// FindOrCreate inserts the user unless an account with the email exists.
// The unique index on email resolves the concurrent first-login race: a
// losing insert comes back as a duplicate key error and is answered with
// the winner's record.
func (r *userRepository) FindOrCreate(ctx context.Context, user *entity.User) (*entity.User, bool, error) {
	existing, err := r.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, err
	}

	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = entity.RoleUser
	}

	if _, err := r.c.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			winner, findErr := r.FindByEmail(ctx, user.Email)
			if findErr != nil {
				return nil, false, findErr
			}

			return winner, false, nil
		}

		return nil, false, errors.Wrap(err, "failed to insert user")
	}

	return user, true, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	cursor, err := r.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	var users []*entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "failed to decode users")
	}

	return users, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	cursor, err := r.c.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users by role")
	}

	var users []*entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "failed to decode users")
	}

	return users, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, email string, role entity.Role) error {
	result, err := r.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to update user role")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
