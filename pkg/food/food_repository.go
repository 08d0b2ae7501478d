package food

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodbank-backend/domain"
	"foodbank-backend/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	FoodRepository interface {
		InsertFood(ctx context.Context, food *entities.Food) (primitive.ObjectID, error)
		FindFoods(ctx context.Context) ([]*entities.Food, error)
		FindFoodByID(ctx context.Context, id primitive.ObjectID) (*entities.Food, error)
		FindFoodsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Food, error)
		UpsertFood(ctx context.Context, id primitive.ObjectID, fields entities.FoodFields) (*mongo.UpdateResult, error)
		DeleteFood(ctx context.Context, id primitive.ObjectID) (int64, error)
	}

	foodRepository struct {
		collection *mongo.Collection
		timeout    time.Duration
	}
)

func NewFoodRepository(db *mongo.Database, timeout time.Duration) FoodRepository {
	return &foodRepository{
		collection: db.Collection(entities.FoodCollection),
		timeout:    timeout,
	}
}

func (r *foodRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *foodRepository) InsertFood(ctx context.Context, food *entities.Food) (primitive.ObjectID, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, food); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert food: %w", err)
	}
	return food.ID, nil
}

func (r *foodRepository) FindFoods(ctx context.Context) ([]*entities.Food, error) {
	return r.find(ctx, bson.M{})
}

func (r *foodRepository) FindFoodByID(ctx context.Context, id primitive.ObjectID) (*entities.Food, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var food entities.Food
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&food); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("find food %s: %w", id.Hex(), err)
	}
	return &food, nil
}

func (r *foodRepository) FindFoodsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Food, error) {
	if len(ids) == 0 {
		return []*entities.Food{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *foodRepository) UpsertFood(ctx context.Context, id primitive.ObjectID, fields entities.FoodFields) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// the _id equality in the filter is copied onto the inserted document
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, foodUpdateDocument(fields), options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("update food %s: %w", id.Hex(), err)
	}
	return res, nil
}

func (r *foodRepository) DeleteFood(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete food %s: %w", id.Hex(), err)
	}
	return res.DeletedCount, nil
}

func (r *foodRepository) find(ctx context.Context, filter bson.M) ([]*entities.Food, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find foods: %w", err)
	}
	defer cursor.Close(ctx)

	foods := []*entities.Food{}
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("decode foods: %w", err)
	}
	return foods, nil
}

func foodUpdateDocument(fields entities.FoodFields) bson.M {
	return bson.M{
		"$set": bson.M{
			"foodName":        fields.FoodName,
			"foodImage":       fields.FoodImage,
			"foodQuantity":    fields.FoodQuantity,
			"pickupLocation":  fields.PickupLocation,
			"expiredDateTime": fields.ExpiredDateTime,
			"additionalNotes": fields.AdditionalNotes,
			"foodStatus":      fields.FoodStatus,
		},
	}
}
