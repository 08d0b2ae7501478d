package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodbank-backend/domain"
	"foodbank-backend/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	UserRepository interface {
		FindUserByUID(ctx context.Context, uid string) (*entities.User, error)
		CreateUser(ctx context.Context, user *entities.User) error
		UpdateUserProfile(ctx context.Context, user *entities.User) (*mongo.UpdateResult, error)

		// Favorites
		AddFavorite(ctx context.Context, uid string, foodID string) (*mongo.UpdateResult, error)
		RemoveFavorite(ctx context.Context, uid string, foodID string) (*mongo.UpdateResult, error)
	}

	userRepository struct {
		collection *mongo.Collection
		timeout    time.Duration
	}
)

func NewUserRepository(db *mongo.Database, timeout time.Duration) UserRepository {
	return &userRepository{
		collection: db.Collection(entities.UserCollection),
		timeout:    timeout,
	}
}

func (r *userRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *userRepository) FindUserByUID(ctx context.Context, uid string) (*entities.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user entities.User
	if err := r.collection.FindOne(ctx, bson.M{"uid": uid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", uid, err)
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user %s: %w", user.UID, err)
	}
	return nil
}

func (r *userRepository) UpdateUserProfile(ctx context.Context, user *entities.User) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, bson.M{"uid": user.UID}, profileUpdateDocument(user))
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", user.UID, err)
	}
	return res, nil
}

func (r *userRepository) AddFavorite(ctx context.Context, uid string, foodID string) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{"$addToSet": bson.M{"favorites": foodID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("add favorite %s for %s: %w", foodID, uid, err)
	}
	return res, nil
}

func (r *userRepository) RemoveFavorite(ctx context.Context, uid string, foodID string) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{"$pull": bson.M{"favorites": foodID}},
	)
	if err != nil {
		return nil, fmt.Errorf("remove favorite %s for %s: %w", foodID, uid, err)
	}
	return res, nil
}

// favorites are left alone on profile sync
func profileUpdateDocument(user *entities.User) bson.M {
	return bson.M{
		"$set": bson.M{
			"email":       user.Email,
			"displayName": user.DisplayName,
			"photoURL":    user.PhotoURL,
		},
	}
}
