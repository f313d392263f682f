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

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	data.ID = primitive.NilObjectID

	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrInvalidID
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection(productsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, param domain.ProductFilter) (data []domain.Product, err error) {
	filter := bson.D{}
	if param.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: param.Category})
	}
	if param.UserEmail != "" {
		filter = append(filter, bson.E{Key: "userEmail", Value: param.UserEmail})
	}
	if param.AvailableOnly {
		filter = append(filter, bson.E{Key: "$expr", Value: bson.D{
			{Key: "$gte", Value: bson.A{"$main_quantity", "$min_sell_quantity"}},
		}})
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := r.db.Collection(productsCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, id string, update domain.ProductUpdate) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	set := productUpdateDocument(update)
	if len(set) == 0 {
		return errs.ErrClient
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func productUpdateDocument(u domain.ProductUpdate) bson.D {
	set := bson.D{}
	if u.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *u.Name})
	}
	if u.Brand != nil {
		set = append(set, bson.E{Key: "brand", Value: *u.Brand})
	}
	if u.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *u.Image})
	}
	if u.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *u.Category})
	}
	if u.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *u.Description})
	}
	if u.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *u.Price})
	}
	if u.MainQuantity != nil {
		set = append(set, bson.E{Key: "main_quantity", Value: *u.MainQuantity})
	}
	if u.MinSellQuantity != nil {
		set = append(set, bson.E{Key: "min_sell_quantity", Value: *u.MinSellQuantity})
	}
	return set
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	result, err := r.db.Collection(productsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DecrementStock(ctx context.Context, id string, quantity int64) (ok bool, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errs.ErrInvalidID
	}

	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "main_quantity", Value: bson.D{{Key: "$gte", Value: quantity}}},
	}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "main_quantity", Value: -quantity}}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecrementStock").Msg("Failed to update product quantity")
		return false, err
	}

	return result.MatchedCount == 1, nil
}

func (r *MongoDBProductRepositoryImpl) IncrementStock(ctx context.Context, id string, quantity int64) (ok bool, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errs.ErrInvalidID
	}

	filter := bson.D{{Key: "_id", Value: productID}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "main_quantity", Value: quantity}}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementStock").Msg("Failed to update product quantity")
		return false, err
	}

	return result.MatchedCount == 1, nil
}
