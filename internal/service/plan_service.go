package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/repository"
	"nutrifit/fitness-platform/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUploadURLError   = errors.New("failed to generate upload URL")
	ErrDownloadURLError = errors.New("failed to generate download URL")
	ErrPlanHasNoImage   = errors.New("plan has no image")
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the client reports back on confirm
}

// PlanService manages the reusable plan templates. Training plans are owned
// by the trainer/administrator roles, meal plans by nutritionist/administrator;
// reading is open to any authenticated user.
type PlanService interface {
	CreateTrainingPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.TrainingPlan) (*domain.TrainingPlan, error)
	UpdateTrainingPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.TrainingPlan) (*domain.TrainingPlan, error)
	DeleteTrainingPlan(ctx context.Context, actorID, planID primitive.ObjectID) error
	GetTrainingPlan(ctx context.Context, planID primitive.ObjectID) (*domain.TrainingPlan, error)
	ListTrainingPlans(ctx context.Context) ([]domain.TrainingPlan, error)

	CreateMealPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.MealPlan) (*domain.MealPlan, error)
	UpdateMealPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.MealPlan) (*domain.MealPlan, error)
	DeleteMealPlan(ctx context.Context, actorID, planID primitive.ObjectID) error
	GetMealPlan(ctx context.Context, planID primitive.ObjectID) (*domain.MealPlan, error)
	ListMealPlans(ctx context.Context) ([]domain.MealPlan, error)

	// Plan images live in the blob store; clients upload through presigned URLs.
	RequestPlanImageUploadURL(ctx context.Context, actorID, planID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmPlanImage(ctx context.Context, actorID, planID primitive.ObjectID, objectKey string) error
	GetPlanImageURL(ctx context.Context, planID primitive.ObjectID) (string, error)
}

type planService struct {
	gate             roleGate
	trainingPlanRepo repository.TrainingPlanRepository
	mealPlanRepo     repository.MealPlanRepository
	fileStorage      storage.FileStorage
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	userRepo repository.UserRepository,
	trainingPlanRepo repository.TrainingPlanRepository,
	mealPlanRepo repository.MealPlanRepository,
	fileStorage storage.FileStorage,
) PlanService {
	return &planService{
		gate:             roleGate{userRepo: userRepo},
		trainingPlanRepo: trainingPlanRepo,
		mealPlanRepo:     mealPlanRepo,
		fileStorage:      fileStorage,
	}
}

// === Training plans ===

func (s *planService) CreateTrainingPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.TrainingPlan) (*domain.TrainingPlan, error) {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleTrainer, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	if plan.Name == "" {
		return nil, errors.New("training plan name is required")
	}
	for i := range plan.Workouts {
		if plan.Workouts[i].Sequence == 0 {
			plan.Workouts[i].Sequence = i + 1
		}
	}

	id, err := s.trainingPlanRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) UpdateTrainingPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.TrainingPlan) (*domain.TrainingPlan, error) {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleTrainer, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	existing, err := s.trainingPlanRepo.GetByID(ctx, plan.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingPlanNotFound
		}
		return nil, err
	}
	if plan.ImageKey == "" {
		plan.ImageKey = existing.ImageKey
	}

	if err := s.trainingPlanRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) DeleteTrainingPlan(ctx context.Context, actorID, planID primitive.ObjectID) error {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleTrainer, domain.RoleAdministrator); err != nil {
		return err
	}
	err := s.trainingPlanRepo.Delete(ctx, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTrainingPlanNotFound
	}
	return err
}

func (s *planService) GetTrainingPlan(ctx context.Context, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.trainingPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListTrainingPlans(ctx context.Context) ([]domain.TrainingPlan, error) {
	return s.trainingPlanRepo.List(ctx)
}

// === Meal plans ===

func (s *planService) CreateMealPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.MealPlan) (*domain.MealPlan, error) {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleNutritionist, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	if plan.Name == "" {
		return nil, errors.New("meal plan name is required")
	}
	if err := validateMealDistribution(plan.MealDistribution); err != nil {
		return nil, err
	}

	id, err := s.mealPlanRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) UpdateMealPlan(ctx context.Context, actorID primitive.ObjectID, plan *domain.MealPlan) (*domain.MealPlan, error) {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleNutritionist, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	if err := validateMealDistribution(plan.MealDistribution); err != nil {
		return nil, err
	}
	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) DeleteMealPlan(ctx context.Context, actorID, planID primitive.ObjectID) error {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleNutritionist, domain.RoleAdministrator); err != nil {
		return err
	}
	err := s.mealPlanRepo.Delete(ctx, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMealPlanNotFound
	}
	return err
}

func (s *planService) GetMealPlan(ctx context.Context, planID primitive.ObjectID) (*domain.MealPlan, error) {
	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListMealPlans(ctx context.Context) ([]domain.MealPlan, error) {
	return s.mealPlanRepo.List(ctx)
}

// validateMealDistribution checks the meal-time percentage split sums to 100
// when present.
func validateMealDistribution(dist map[string]int) error {
	if len(dist) == 0 {
		return nil
	}
	total := 0
	for _, pct := range dist {
		if pct < 0 {
			return errors.New("meal distribution percentages must not be negative")
		}
		total += pct
	}
	if total != 100 {
		return fmt.Errorf("meal distribution percentages must sum to 100, got %d", total)
	}
	return nil
}

// === Plan images ===

func (s *planService) RequestPlanImageUploadURL(ctx context.Context, actorID, planID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleTrainer, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}
	if _, err := s.trainingPlanRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingPlanNotFound
		}
		return nil, err
	}

	ext := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join("plan-images", planID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

func (s *planService) ConfirmPlanImage(ctx context.Context, actorID, planID primitive.ObjectID, objectKey string) error {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleTrainer, domain.RoleAdministrator); err != nil {
		return err
	}
	if objectKey == "" {
		return errors.New("object key is required")
	}
	plan, err := s.trainingPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingPlanNotFound
		}
		return err
	}

	oldKey := plan.ImageKey
	plan.ImageKey = objectKey
	if err := s.trainingPlanRepo.Update(ctx, plan); err != nil {
		return err
	}
	if oldKey != "" && oldKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, oldKey)
	}
	return nil
}

func (s *planService) GetPlanImageURL(ctx context.Context, planID primitive.ObjectID) (string, error) {
	plan, err := s.trainingPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTrainingPlanNotFound
		}
		return "", err
	}
	if plan.ImageKey == "" {
		return "", ErrPlanHasNoImage
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, plan.ImageKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return url, nil
}
