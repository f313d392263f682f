package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	err = r.db.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, errs.ErrAccountNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return user, err
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) UpsertOnLogin(ctx context.Context, data domain.User, now time.Time) (user domain.User, created bool, err error) {
	onInsert := bson.D{
		{Key: "role", Value: data.Role},
		{Key: "createdAt", Value: now},
	}
	if data.Name != "" {
		onInsert = append(onInsert, bson.E{Key: "name", Value: data.Name})
	}
	if data.Image != "" {
		onInsert = append(onInsert, bson.E{Key: "image", Value: data.Image})
	}

	filter := bson.D{{Key: "email", Value: data.Email}}
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "lastLoggedIn", Value: now}}},
		{Key: "$setOnInsert", Value: onInsert},
	}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpsertOnLogin").Msg("")
		return
	}

	user, err = r.GetUserByEmail(ctx, data.Email)
	if err != nil {
		return
	}

	return user, result.UpsertedCount == 1, nil
}

// EnsureIndexes creates the unique email index the login upsert relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error().Err(err).Str("component", "EnsureIndexes").Msg("")
		return err
	}

	return nil
}
