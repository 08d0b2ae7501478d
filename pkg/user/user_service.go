package user

import (
	"context"
	"errors"

	"foodbank-backend/domain"
	"foodbank-backend/entities"
	"foodbank-backend/internal/utils/mailing"
	"foodbank-backend/pkg/food"
	"foodbank-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	UserService interface {
		UpsertUser(ctx context.Context, callerID string, req domain.UpsertUserRequest) (domain.UpsertUserResponse, error)
		GetFavorites(ctx context.Context, uid string) ([]domain.FoodResponse, error)
		AddFavorite(ctx context.Context, uid string, req domain.AddFavoriteRequest) (domain.UpdateResultResponse, error)
		RemoveFavorite(ctx context.Context, uid string, foodID string) error
	}

	userService struct {
		userRepository UserRepository
		foodRepository food.FoodRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
	}
)

// NewUserService accepts a nil mailer; welcome mails are then skipped.
func NewUserService(
	userRepository UserRepository,
	foodRepository food.FoodRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	appURL string,
) UserService {
	return &userService{
		userRepository: userRepository,
		foodRepository: foodRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         appURL,
	}
}

// UpsertUser treats an empty callerID as a request relayed from the identity
// provider. A non-empty one must name the user being written.
func (s *userService) UpsertUser(ctx context.Context, callerID string, req domain.UpsertUserRequest) (domain.UpsertUserResponse, error) {
	if callerID != "" && callerID != req.UID {
		return domain.UpsertUserResponse{}, domain.ErrUserNotAllowed
	}

	user := &entities.User{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	}

	result, err := s.saveUser(ctx, user)
	if err != nil {
		return domain.UpsertUserResponse{}, err
	}

	token, err := s.jwtService.GenerateTokenUser(user.UID)
	if err != nil {
		return domain.UpsertUserResponse{}, err
	}

	if result == domain.UserResultCreated {
		s.sendWelcomeMail(user)
	}
	return domain.UpsertUserResponse{UID: user.UID, Result: result, Token: token}, nil
}

func (s *userService) saveUser(ctx context.Context, user *entities.User) (string, error) {
	_, err := s.userRepository.FindUserByUID(ctx, user.UID)
	switch {
	case err == nil:
		if _, err := s.userRepository.UpdateUserProfile(ctx, user); err != nil {
			return "", err
		}
		return domain.UserResultUpdated, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", err
	}

	user.Favorites = []string{}
	err = s.userRepository.CreateUser(ctx, user)
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		// another request created the user after our lookup
		if _, err := s.userRepository.UpdateUserProfile(ctx, user); err != nil {
			return "", err
		}
		return domain.UserResultUpdated, nil
	}
	if err != nil {
		return "", err
	}
	return domain.UserResultCreated, nil
}

func (s *userService) sendWelcomeMail(user *entities.User) {
	if s.mailer == nil || user.Email == "" {
		return
	}
	subject, body := mailing.WelcomeMail(user.DisplayName, s.appURL)
	go func() {
		if err := s.mailer.SendMail(user.Email, subject, body); err != nil {
			log.Warnf("failed to send welcome mail to %s: %v", user.UID, err)
		}
	}()
}

func (s *userService) GetFavorites(ctx context.Context, uid string) ([]domain.FoodResponse, error) {
	user, err := s.userRepository.FindUserByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return nil, domain.ErrNoFavorites
	}

	ids := make([]primitive.ObjectID, 0, len(user.Favorites))
	for _, fav := range user.Favorites {
		oid, err := primitive.ObjectIDFromHex(fav)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}

	foods, err := s.foodRepository.FindFoodsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return food.ToFoodResponses(foods), nil
}

func (s *userService) AddFavorite(ctx context.Context, uid string, req domain.AddFavoriteRequest) (domain.UpdateResultResponse, error) {
	if _, err := food.ParseFoodID(req.FoodID); err != nil {
		return domain.UpdateResultResponse{}, err
	}

	res, err := s.userRepository.AddFavorite(ctx, uid, req.FoodID)
	if err != nil {
		return domain.UpdateResultResponse{}, err
	}
	return food.ToUpdateResultResponse(res), nil
}

func (s *userService) RemoveFavorite(ctx context.Context, uid string, foodID string) error {
	res, err := s.userRepository.RemoveFavorite(ctx, uid, foodID)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
