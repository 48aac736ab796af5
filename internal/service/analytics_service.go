package service

import (
	"context"
	"sort"

	"nutrifit/fitness-platform/internal/repository"
)

// ExerciseCount is one row of the exercise popularity ranking.
type ExerciseCount struct {
	ExerciseName string `json:"exerciseName"`
	Completions  int    `json:"completions"`
}

// GrowthPoint is one month of user registrations.
type GrowthPoint struct {
	Month         string `json:"month"` // "2024-11"
	Registrations int    `json:"registrations"`
}

// AnalyticsService computes the basic platform views: which exercises get
// completed most, and how registrations grow over time.
type AnalyticsService interface {
	ExercisePopularity(ctx context.Context) ([]ExerciseCount, error)
	UserGrowth(ctx context.Context) ([]GrowthPoint, error)
}

type analyticsService struct {
	userRepo        repository.UserRepository
	exerciseLogRepo repository.ExerciseLogRepository
}

// NewAnalyticsService creates a new instance of analyticsService.
func NewAnalyticsService(userRepo repository.UserRepository, exerciseLogRepo repository.ExerciseLogRepository) AnalyticsService {
	return &analyticsService{
		userRepo:        userRepo,
		exerciseLogRepo: exerciseLogRepo,
	}
}

// ExercisePopularity ranks exercises by completion count, most popular first;
// ties break alphabetically so the ordering is stable.
func (s *analyticsService) ExercisePopularity(ctx context.Context) ([]ExerciseCount, error) {
	counts, err := s.exerciseLogRepo.CountByExercise(ctx)
	if err != nil {
		return nil, err
	}

	ranking := make([]ExerciseCount, 0, len(counts))
	for name, n := range counts {
		ranking = append(ranking, ExerciseCount{ExerciseName: name, Completions: n})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Completions != ranking[j].Completions {
			return ranking[i].Completions > ranking[j].Completions
		}
		return ranking[i].ExerciseName < ranking[j].ExerciseName
	})
	return ranking, nil
}

// UserGrowth groups registrations by calendar month, oldest first.
func (s *analyticsService) UserGrowth(ctx context.Context) ([]GrowthPoint, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]int)
	for _, u := range users {
		byMonth[u.CreatedAt.UTC().Format("2006-01")]++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	growth := make([]GrowthPoint, 0, len(months))
	for _, m := range months {
		growth = append(growth, GrowthPoint{Month: m, Registrations: byMonth[m]})
	}
	return growth, nil
}
