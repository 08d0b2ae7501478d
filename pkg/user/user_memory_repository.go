package user

import (
	"context"
	"sync"

	"foodbank-backend/domain"
	"foodbank-backend/entities"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*entities.User),
	}
}

func (r *memoryUserRepository) FindUserByUID(_ context.Context, uid string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UID]; ok {
		return domain.ErrUserAlreadyExists
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	r.users[user.UID] = copyUser(user)
	return nil
}

func (r *memoryUserRepository) UpdateUserProfile(_ context.Context, user *entities.User) (*mongo.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.UID]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	res := &mongo.UpdateResult{MatchedCount: 1}
	if existing.Email != user.Email || existing.DisplayName != user.DisplayName || existing.PhotoURL != user.PhotoURL {
		existing.Email = user.Email
		existing.DisplayName = user.DisplayName
		existing.PhotoURL = user.PhotoURL
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *memoryUserRepository) AddFavorite(_ context.Context, uid string, foodID string) (*mongo.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[uid]
	if !ok {
		id := primitive.NewObjectID()
		r.users[uid] = &entities.User{ID: id, UID: uid, Favorites: []string{foodID}}
		return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
	}

	res := &mongo.UpdateResult{MatchedCount: 1}
	for _, fav := range existing.Favorites {
		if fav == foodID {
			return res, nil
		}
	}
	existing.Favorites = append(existing.Favorites, foodID)
	res.ModifiedCount = 1
	return res, nil
}

func (r *memoryUserRepository) RemoveFavorite(_ context.Context, uid string, foodID string) (*mongo.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[uid]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}

	res := &mongo.UpdateResult{MatchedCount: 1}
	kept := existing.Favorites[:0]
	for _, fav := range existing.Favorites {
		if fav == foodID {
			res.ModifiedCount = 1
			continue
		}
		kept = append(kept, fav)
	}
	existing.Favorites = kept
	return res, nil
}

func copyUser(user *entities.User) *entities.User {
	out := *user
	out.Favorites = append([]string{}, user.Favorites...)
	return &out
}
