package food

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"foodbank-backend/domain"
	"foodbank-backend/entities"
	"foodbank-backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const foodImageFolder = "food-images"

type (
	FoodService interface {
		CreateFood(ctx context.Context, req domain.CreateFoodRequest) (domain.CreateFoodResponse, error)
		GetFoods(ctx context.Context) ([]domain.FoodResponse, error)
		GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error)
		UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest) (domain.UpdateResultResponse, error)
		DeleteFood(ctx context.Context, id string) (domain.DeleteFoodResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.UploadFoodImageResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
	}
)

// NewFoodService accepts a nil s3; image uploads then fail with
// domain.ErrStorageNotConfigured and stored images are never cleaned up.
func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
	}
}

func (s *foodService) CreateFood(ctx context.Context, req domain.CreateFoodRequest) (domain.CreateFoodResponse, error) {
	status := req.FoodStatus
	if status == "" {
		status = domain.FoodStatusAvailable
	}

	food := &entities.Food{
		FoodName:        req.FoodName,
		FoodImage:       req.FoodImage,
		FoodQuantity:    req.FoodQuantity,
		PickupLocation:  req.PickupLocation,
		ExpiredDateTime: req.ExpiredDateTime.UTC(),
		AdditionalNotes: req.AdditionalNotes,
		FoodStatus:      status,
		DonatorName:     req.DonatorName,
		DonatorEmail:    req.DonatorEmail,
		DonatorImage:    req.DonatorImage,
	}

	id, err := s.foodRepository.InsertFood(ctx, food)
	if err != nil {
		return domain.CreateFoodResponse{}, err
	}
	return domain.CreateFoodResponse{InsertedID: id.Hex()}, nil
}

func (s *foodService) GetFoods(ctx context.Context) ([]domain.FoodResponse, error) {
	foods, err := s.foodRepository.FindFoods(ctx)
	if err != nil {
		return nil, err
	}
	return ToFoodResponses(foods), nil
}

func (s *foodService) GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error) {
	oid, err := ParseFoodID(id)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	food, err := s.foodRepository.FindFoodByID(ctx, oid)
	if err != nil {
		return domain.FoodResponse{}, err
	}
	return ToFoodResponse(food), nil
}

func (s *foodService) UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest) (domain.UpdateResultResponse, error) {
	oid, err := ParseFoodID(id)
	if err != nil {
		return domain.UpdateResultResponse{}, err
	}

	previous, err := s.findExisting(ctx, oid)
	if err != nil {
		return domain.UpdateResultResponse{}, err
	}

	res, err := s.foodRepository.UpsertFood(ctx, oid, entities.FoodFields{
		FoodName:        req.FoodName,
		FoodImage:       req.FoodImage,
		FoodQuantity:    req.FoodQuantity,
		PickupLocation:  req.PickupLocation,
		ExpiredDateTime: req.ExpiredDateTime.UTC(),
		AdditionalNotes: req.AdditionalNotes,
		FoodStatus:      req.FoodStatus,
	})
	if err != nil {
		return domain.UpdateResultResponse{}, err
	}

	if previous != nil && previous.FoodImage != req.FoodImage {
		s.removeStoredImage(ctx, previous.FoodImage)
	}
	return ToUpdateResultResponse(res), nil
}

func (s *foodService) DeleteFood(ctx context.Context, id string) (domain.DeleteFoodResponse, error) {
	oid, err := ParseFoodID(id)
	if err != nil {
		return domain.DeleteFoodResponse{}, err
	}

	previous, err := s.findExisting(ctx, oid)
	if err != nil {
		return domain.DeleteFoodResponse{}, err
	}

	deleted, err := s.foodRepository.DeleteFood(ctx, oid)
	if err != nil {
		return domain.DeleteFoodResponse{}, err
	}

	if deleted > 0 && previous != nil {
		s.removeStoredImage(ctx, previous.FoodImage)
	}
	return domain.DeleteFoodResponse{DeletedCount: deleted}, nil
}

// findExisting returns nil without error when the food does not exist. It
// skips the lookup entirely when there is no bucket to clean up.
func (s *foodService) findExisting(ctx context.Context, oid primitive.ObjectID) (*entities.Food, error) {
	if s.s3 == nil {
		return nil, nil
	}
	existing, err := s.foodRepository.FindFoodByID(ctx, oid)
	if errors.Is(err, domain.ErrFoodNotFound) {
		return nil, nil
	}
	return existing, err
}

// removeStoredImage deletes link from the bucket if it points there. Links to
// other hosts are left alone and failures only get logged.
func (s *foodService) removeStoredImage(ctx context.Context, link string) {
	if s.s3 == nil || link == "" {
		return
	}
	objectKey := s.s3.GetObjectKeyFromLink(link)
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warnf("failed to delete food image %s: %v", objectKey, err)
	}
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.UploadFoodImageResponse, error) {
	if s.s3 == nil {
		return domain.UploadFoodImageResponse{}, domain.ErrStorageNotConfigured
	}
	if req.Image == nil {
		return domain.UploadFoodImageResponse{}, domain.ErrInvalidImageFormat
	}
	if req.Image.Size > domain.MaxFoodImageSize {
		return domain.UploadFoodImageResponse{}, domain.ErrImageTooLarge
	}
	if !isAllowedImage(req.Image.Filename) {
		return domain.UploadFoodImageResponse{}, domain.ErrInvalidImageFormat
	}

	objectKey, err := s.s3.UploadFile(ctx, req.Image, foodImageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrExtensionNotAllowed) {
			return domain.UploadFoodImageResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.UploadFoodImageResponse{}, err
	}
	return domain.UploadFoodImageResponse{URL: s.s3.GetPublicLinkKey(objectKey)}, nil
}

func ParseFoodID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidObjectID
	}
	return oid, nil
}

func ToFoodResponse(food *entities.Food) domain.FoodResponse {
	return domain.FoodResponse{
		ID:              food.ID.Hex(),
		FoodName:        food.FoodName,
		FoodImage:       food.FoodImage,
		FoodQuantity:    food.FoodQuantity,
		PickupLocation:  food.PickupLocation,
		ExpiredDateTime: food.ExpiredDateTime,
		AdditionalNotes: food.AdditionalNotes,
		FoodStatus:      food.FoodStatus,
		DonatorName:     food.DonatorName,
		DonatorEmail:    food.DonatorEmail,
		DonatorImage:    food.DonatorImage,
	}
}

func ToFoodResponses(foods []*entities.Food) []domain.FoodResponse {
	res := make([]domain.FoodResponse, 0, len(foods))
	for _, food := range foods {
		res = append(res, ToFoodResponse(food))
	}
	return res
}

func ToUpdateResultResponse(res *mongo.UpdateResult) domain.UpdateResultResponse {
	out := domain.UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out
}

func isAllowedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range storage.AllowImage {
		if ext == allowed {
			return true
		}
	}
	return false
}
