package food

import (
	"context"
	"sync"

	"foodbank-backend/domain"
	"foodbank-backend/entities"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memoryFoodRepository keeps foods in insertion order, which stands in for
// the natural order of the collection.
type memoryFoodRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	foods map[primitive.ObjectID]entities.Food
}

func NewMemoryFoodRepository() FoodRepository {
	return &memoryFoodRepository{
		foods: make(map[primitive.ObjectID]entities.Food),
	}
}

func (r *memoryFoodRepository) InsertFood(_ context.Context, food *entities.Food) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	if _, ok := r.foods[food.ID]; ok {
		return primitive.NilObjectID, mongo.WriteException{
			WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}},
		}
	}
	stored := *food
	stored.ExpiredDateTime = normalizeFoodFields(entities.FoodFields{ExpiredDateTime: food.ExpiredDateTime}).ExpiredDateTime
	r.order = append(r.order, stored.ID)
	r.foods[stored.ID] = stored
	return stored.ID, nil
}

func (r *memoryFoodRepository) FindFoods(_ context.Context) ([]*entities.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	foods := make([]*entities.Food, 0, len(r.order))
	for _, id := range r.order {
		food := r.foods[id]
		foods = append(foods, &food)
	}
	return foods, nil
}

func (r *memoryFoodRepository) FindFoodByID(_ context.Context, id primitive.ObjectID) (*entities.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	food, ok := r.foods[id]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	return &food, nil
}

func (r *memoryFoodRepository) FindFoodsByIDs(_ context.Context, ids []primitive.ObjectID) ([]*entities.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	foods := []*entities.Food{}
	for _, id := range r.order {
		if _, ok := wanted[id]; !ok {
			continue
		}
		food := r.foods[id]
		foods = append(foods, &food)
	}
	return foods, nil
}

func (r *memoryFoodRepository) UpsertFood(_ context.Context, id primitive.ObjectID, fields entities.FoodFields) (*mongo.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	food, ok := r.foods[id]
	if !ok {
		food = entities.Food{ID: id}
		applyFoodFields(&food, fields)
		r.order = append(r.order, id)
		r.foods[id] = food
		return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
	}

	res := &mongo.UpdateResult{MatchedCount: 1}
	if !sameFoodFields(foodFieldsOf(food), normalizeFoodFields(fields)) {
		applyFoodFields(&food, fields)
		r.foods[id] = food
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *memoryFoodRepository) DeleteFood(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.foods[id]; !ok {
		return 0, nil
	}
	delete(r.foods, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func applyFoodFields(food *entities.Food, fields entities.FoodFields) {
	fields = normalizeFoodFields(fields)
	food.FoodName = fields.FoodName
	food.FoodImage = fields.FoodImage
	food.FoodQuantity = fields.FoodQuantity
	food.PickupLocation = fields.PickupLocation
	food.ExpiredDateTime = fields.ExpiredDateTime
	food.AdditionalNotes = fields.AdditionalNotes
	food.FoodStatus = fields.FoodStatus
}

func foodFieldsOf(food entities.Food) entities.FoodFields {
	return normalizeFoodFields(entities.FoodFields{
		FoodName:        food.FoodName,
		FoodImage:       food.FoodImage,
		FoodQuantity:    food.FoodQuantity,
		PickupLocation:  food.PickupLocation,
		ExpiredDateTime: food.ExpiredDateTime,
		AdditionalNotes: food.AdditionalNotes,
		FoodStatus:      food.FoodStatus,
	})
}

func sameFoodFields(a, b entities.FoodFields) bool {
	return a.FoodName == b.FoodName &&
		a.FoodImage == b.FoodImage &&
		a.FoodQuantity == b.FoodQuantity &&
		a.PickupLocation == b.PickupLocation &&
		a.ExpiredDateTime.Equal(b.ExpiredDateTime) &&
		a.AdditionalNotes == b.AdditionalNotes &&
		a.FoodStatus == b.FoodStatus
}

// BSON dates carry millisecond UTC precision.
func normalizeFoodFields(fields entities.FoodFields) entities.FoodFields {
	fields.ExpiredDateTime = primitive.NewDateTimeFromTime(fields.ExpiredDateTime).Time().UTC()
	return fields
}
