package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodbank-backend/domain"
	"foodbank-backend/entities"
	"foodbank-backend/pkg/food"
	"foodbank-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	sent chan sentMail
}

func (f *fakeMailer) SendMail(to, subject, _ string) error {
	f.sent <- sentMail{to: to, subject: subject}
	return nil
}

// racingUserRepository reports the user as missing on lookup but as
// already existing on insert.
type racingUserRepository struct {
	UserRepository
}

func (r *racingUserRepository) FindUserByUID(context.Context, string) (*entities.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *racingUserRepository) CreateUser(context.Context, *entities.User) error {
	return domain.ErrUserAlreadyExists
}

type failingUserRepository struct {
	UserRepository
}

func (r *failingUserRepository) FindUserByUID(context.Context, string) (*entities.User, error) {
	return nil, errors.New("connection reset")
}

func (r *failingUserRepository) RemoveFavorite(context.Context, string, string) (*mongo.UpdateResult, error) {
	return nil, errors.New("connection reset")
}

type fixture struct {
	svc   UserService
	users UserRepository
	foods food.FoodRepository
}

func newFixture() fixture {
	users := NewMemoryUserRepository()
	foods := food.NewMemoryFoodRepository()
	return fixture{
		svc:   NewUserService(users, foods, jwt.NewJWTService("secret", "FOODBANK"), nil, ""),
		users: users,
		foods: foods,
	}
}

func (f fixture) insertFood(t *testing.T, name string) string {
	t.Helper()
	id, err := f.foods.InsertFood(context.Background(), &entities.Food{
		FoodName:        name,
		FoodQuantity:    1,
		ExpiredDateTime: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		FoodStatus:      domain.FoodStatusAvailable,
	})
	require.NoError(t, err)
	return id.Hex()
}

func TestUpsertUser_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	res, err := f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{
		UID: "u1", Email: "a@x.com", DisplayName: "A", PhotoURL: "p",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserResultCreated, res.Result)
	assert.NotEmpty(t, res.Token)

	res, err = f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{
		UID: "u1", Email: "a@x.com", DisplayName: "B", PhotoURL: "p",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserResultUpdated, res.Result)

	stored, err := f.users.FindUserByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "B", stored.DisplayName)
	assert.Equal(t, "p", stored.PhotoURL)
	assert.NotNil(t, stored.Favorites)
	assert.Empty(t, stored.Favorites)
}

func TestUpsertUser_CallerMustMatchUID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "victim", Email: "v@x.com"})
	require.NoError(t, err)

	_, err = f.svc.UpsertUser(ctx, "attacker", domain.UpsertUserRequest{UID: "victim", Email: "evil@x.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	stored, err := f.users.FindUserByUID(ctx, "victim")
	require.NoError(t, err)
	assert.Equal(t, "v@x.com", stored.Email)

	res, err := f.svc.UpsertUser(ctx, "victim", domain.UpsertUserRequest{UID: "victim", Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserResultUpdated, res.Result)
}

func TestUpsertUser_KeepsFavorites(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	foodID := f.insertFood(t, "Rice")

	_, err := f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = f.svc.AddFavorite(ctx, "u1", domain.AddFavoriteRequest{FoodID: foodID})
	require.NoError(t, err)

	_, err = f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "new@x.com"})
	require.NoError(t, err)

	stored, err := f.users.FindUserByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", stored.Email)
	assert.Equal(t, []string{foodID}, stored.Favorites)
}

func TestUpsertUser_LostCreateRaceFallsBackToUpdate(t *testing.T) {
	svc := NewUserService(&racingUserRepository{UserRepository: NewMemoryUserRepository()},
		food.NewMemoryFoodRepository(), jwt.NewJWTService("secret", "FOODBANK"), nil, "")

	res, err := svc.UpsertUser(context.Background(), "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserResultUpdated, res.Result)
}

func TestUpsertUser_StoreFailure(t *testing.T) {
	svc := NewUserService(&failingUserRepository{}, food.NewMemoryFoodRepository(),
		jwt.NewJWTService("secret", "FOODBANK"), nil, "")

	_, err := svc.UpsertUser(context.Background(), "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpsertUser_SendsWelcomeMailOnCreateOnly(t *testing.T) {
	ctx := context.Background()
	mailer := &fakeMailer{sent: make(chan sentMail, 2)}
	svc := NewUserService(NewMemoryUserRepository(), food.NewMemoryFoodRepository(),
		jwt.NewJWTService("secret", "FOODBANK"), mailer, "https://foodbank.example")

	_, err := svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com", DisplayName: "A"})
	require.NoError(t, err)

	select {
	case mail := <-mailer.sent:
		assert.Equal(t, "a@x.com", mail.to)
		assert.Equal(t, "Welcome to Foodbank", mail.subject)
	case <-time.After(time.Second):
		t.Fatal("welcome mail was not sent")
	}

	_, err = svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com", DisplayName: "B"})
	require.NoError(t, err)

	select {
	case <-mailer.sent:
		t.Fatal("welcome mail sent on update")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAddFavorite_IsSetInsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	foodID := f.insertFood(t, "Rice")
	_, err := f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.NoError(t, err)

	first, err := f.svc.AddFavorite(ctx, "u1", domain.AddFavoriteRequest{FoodID: foodID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ModifiedCount)

	second, err := f.svc.AddFavorite(ctx, "u1", domain.AddFavoriteRequest{FoodID: foodID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.MatchedCount)
	assert.Equal(t, int64(0), second.ModifiedCount)

	stored, err := f.users.FindUserByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.Favorites, 1)
}

func TestAddFavorite_UpsertsUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	foodID := f.insertFood(t, "Rice")

	res, err := f.svc.AddFavorite(ctx, "ghost", domain.AddFavoriteRequest{FoodID: foodID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UpsertedCount)
	assert.NotEmpty(t, res.UpsertedID)

	stored, err := f.users.FindUserByUID(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, []string{foodID}, stored.Favorites)
}

func TestAddFavorite_InvalidFoodID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AddFavorite(context.Background(), "u1", domain.AddFavoriteRequest{FoodID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidObjectID)
}

func TestRemoveFavorite(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	rice := f.insertFood(t, "Rice")
	bread := f.insertFood(t, "Bread")
	_, err := f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	for _, id := range []string{rice, bread} {
		_, err := f.svc.AddFavorite(ctx, "u1", domain.AddFavoriteRequest{FoodID: id})
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.RemoveFavorite(ctx, "u1", rice))

	stored, err := f.users.FindUserByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{bread}, stored.Favorites)

	err = f.svc.RemoveFavorite(ctx, "u1", rice)
	assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
}

func TestRemoveFavorite_UnknownUser(t *testing.T) {
	f := newFixture()

	err := f.svc.RemoveFavorite(context.Background(), "nobody", primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRemoveFavorite_StoreFailure(t *testing.T) {
	svc := NewUserService(&failingUserRepository{}, food.NewMemoryFoodRepository(),
		jwt.NewJWTService("secret", "FOODBANK"), nil, "")

	err := svc.RemoveFavorite(context.Background(), "u1", primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrFavoriteNotFound)
}

func TestGetFavorites(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	rice := f.insertFood(t, "Rice")
	bread := f.insertFood(t, "Bread")
	_, err := f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	for _, id := range []string{rice, bread} {
		_, err := f.svc.AddFavorite(ctx, "u1", domain.AddFavoriteRequest{FoodID: id})
		require.NoError(t, err)
	}

	foods, err := f.svc.GetFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.ElementsMatch(t, []string{"Rice", "Bread"}, []string{foods[0].FoodName, foods[1].FoodName})
}

func TestGetFavorites_DropsDeletedFoods(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	rice := f.insertFood(t, "Rice")
	bread := f.insertFood(t, "Bread")
	_, err := f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	for _, id := range []string{rice, bread} {
		_, err := f.svc.AddFavorite(ctx, "u1", domain.AddFavoriteRequest{FoodID: id})
		require.NoError(t, err)
	}

	oid, err := food.ParseFoodID(rice)
	require.NoError(t, err)
	_, err = f.foods.DeleteFood(ctx, oid)
	require.NoError(t, err)

	foods, err := f.svc.GetFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, bread, foods[0].ID)
}

func TestGetFavorites_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.GetFavorites(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.svc.UpsertUser(ctx, "", domain.UpsertUserRequest{UID: "u1", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = f.svc.GetFavorites(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNoFavorites)
}
