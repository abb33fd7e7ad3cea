// Package mongodb implements the domain repositories on the MongoDB
// document store. Every repository relies only on per-document atomicity
// plus the unique indexes declared in indexes.go.
package mongodb

import (
	"context"
	"log/slog"

	"readreach/config"
	"readreach/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Params holds dependencies for the database handle, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB, verifies the connection, ensures indexes and
// returns the database handle shared by all repositories.
func New(params Params) (*mongo.Database, error) {
	client, err := mongo.Connect(params.Ctx, options.Client().ApplyURI(params.Config.Mongo.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongodb")
	}

	if err := client.Ping(params.Ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping mongodb")
	}

	db := client.Database(params.Config.Mongo.Database)

	if err := EnsureIndexes(params.Ctx, db); err != nil {
		return nil, errors.Wrap(err, "failed to ensure indexes")
	}

	params.Logger.Info("Connected to MongoDB",
		slog.String("database", params.Config.Mongo.Database),
	)

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			disconnectCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.WithStack(client.Disconnect(disconnectCtx))
		},
	})

	return db, nil
}
