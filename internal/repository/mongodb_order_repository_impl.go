package repository

import (
	"context"
	"errors"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBOrderRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoDBOrderRepositoryImpl{db: db}
}

func (r *MongoDBOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	data.ID = primitive.NilObjectID

	result, err := r.db.Collection(ordersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByID(ctx context.Context, id string) (order domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return order, errs.ErrInvalidID
	}

	err = r.db.Collection(ordersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: orderID}}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return order, errs.ErrOrderNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return order, err
	}

	return order, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrders(ctx context.Context, param domain.OrderFilter) (data []domain.Order, err error) {
	filter := bson.D{}
	if param.OrderedFrom != "" {
		filter = append(filter, bson.E{Key: "orderedFrom", Value: param.OrderedFrom})
	}
	if param.SellerEmail != "" {
		filter = append(filter, bson.E{Key: "sellerEmail", Value: param.SellerEmail})
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.Order{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) DeleteOrder(ctx context.Context, id string) (deletedCount int64, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, errs.ErrInvalidID
	}

	result, err := r.db.Collection(ordersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: orderID}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrder").Msg("")
		return 0, err
	}

	return result.DeletedCount, nil
}
