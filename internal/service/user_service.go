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

// Profile combines the user record with the progress views the profile
// screen shows.
type Profile struct {
	User         *domain.User         `json:"user"`
	LatestWeight *domain.WeightRecord `json:"latestWeight,omitempty"`
	AvatarURL    string               `json:"avatarUrl,omitempty"`
}

// UserService covers the account-level operations: profile view, profile
// photo handling, and cascading account deletion.
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error)

	RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) error

	// DeleteAccount removes the user and everything it owns: the live training
	// and nutrition assignments, the weekly cycle rows, the weight history and
	// the progress logs. Allowed for the user themselves or an administrator.
	DeleteAccount(ctx context.Context, actorID, userID primitive.ObjectID) error
}

type userService struct {
	userRepo        repository.UserRepository
	userWorkoutRepo repository.UserWorkoutRepository
	weeklyRepo      repository.WeeklyWorkoutRepository
	nutritionRepo   repository.UserNutritionPlanRepository
	weightRepo      repository.WeightRecordRepository
	progressRepo    repository.ProgressTrackingRepository
	exerciseLogRepo repository.ExerciseLogRepository
	fileStorage     storage.FileStorage
	tx              repository.TxRunner
}

// NewUserService creates a new instance of userService.
func NewUserService(
	userRepo repository.UserRepository,
	userWorkoutRepo repository.UserWorkoutRepository,
	weeklyRepo repository.WeeklyWorkoutRepository,
	nutritionRepo repository.UserNutritionPlanRepository,
	weightRepo repository.WeightRecordRepository,
	progressRepo repository.ProgressTrackingRepository,
	exerciseLogRepo repository.ExerciseLogRepository,
	fileStorage storage.FileStorage,
	tx repository.TxRunner,
) UserService {
	return &userService{
		userRepo:        userRepo,
		userWorkoutRepo: userWorkoutRepo,
		weeklyRepo:      weeklyRepo,
		nutritionRepo:   nutritionRepo,
		weightRepo:      weightRepo,
		progressRepo:    progressRepo,
		exerciseLogRepo: exerciseLogRepo,
		fileStorage:     fileStorage,
		tx:              tx,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	profile := &Profile{User: user}

	if latest, err := s.weightRepo.Latest(ctx, userID); err == nil {
		profile.LatestWeight = latest
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if user.AvatarKey != "" {
		if url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry); err == nil {
			profile.AvatarURL = url
		}
	}

	return profile, nil
}

func (s *userService) RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ext := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join("avatars", userID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

func (s *userService) ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.SetAvatarKey(ctx, userID, objectKey); err != nil {
		return err
	}
	if user.AvatarKey != "" && user.AvatarKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, user.AvatarKey)
	}
	return nil
}

func (s *userService) DeleteAccount(ctx context.Context, actorID, userID primitive.ObjectID) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if actor.ID != userID {
		if err := CheckRole(actor.Role, domain.RoleAdministrator); err != nil {
			return err
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if uw, err := s.userWorkoutRepo.GetByUserID(ctx, userID); err == nil {
			if err := s.weeklyRepo.DeleteByUserWorkoutID(ctx, uw.ID); err != nil {
				return err
			}
			if err := s.userWorkoutRepo.DeleteByUserID(ctx, userID); err != nil {
				return err
			}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := s.nutritionRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := s.weightRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.progressRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.exerciseLogRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	if user.AvatarKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, user.AvatarKey)
	}
	return nil
}
