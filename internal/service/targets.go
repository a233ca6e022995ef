package service

import (
	"context"
	"errors"
	"math"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// ErrInvalidProfile is returned when profile fields are missing or implausible.
var ErrInvalidProfile = errors.New("invalid profile for target computation")

// activityMultipliers maps activity level names to their TDEE multiplier.
// Also the source of truth for validating the activity_level field.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Calorie split used when deriving macro targets from a calorie budget:
// 30% protein, 40% carbohydrate, 30% fat.
const (
	proteinCalorieShare = 0.30
	carbCalorieShare    = 0.40
	fatCalorieShare     = 0.30

	caloriesPerGramProtein = 4
	caloriesPerGramCarb    = 4
	caloriesPerGramFat     = 9
)

// Profile holds the user attributes needed to compute nutrition targets.
type Profile struct {
	Sex           string  // "male" or "female"
	Age           int     // years
	HeightCM      float64
	WeightKG      float64
	ActivityLevel string // key into activityMultipliers
}

// TargetsService provides nutrition-targets operations.
type TargetsService interface {
	GetActive(ctx context.Context, userID string) (*repository.TargetsConfig, error)
	// Resolve returns the user's active targets, falling back to the fixed
	// default when the user has none (or no repository is configured).
	Resolve(ctx context.Context, userID string) model.NutritionTargets
	Update(ctx context.Context, userID string, targets model.NutritionTargets, source string) (*repository.TargetsConfig, error)
	List(ctx context.Context, userID string, limit int) ([]repository.TargetsConfig, error)
	ComputeFromProfile(profile Profile) (model.NutritionTargets, error)
}

// TargetsServiceImpl implements TargetsService.
type TargetsServiceImpl struct {
	targetsRepo repository.TargetsRepositoryInterface
}

// NewTargetsService creates a new targets service.
func NewTargetsService(targetsRepo repository.TargetsRepositoryInterface) TargetsService {
	if targetsRepo == nil {
		return &TargetsServiceImpl{}
	}
	return &TargetsServiceImpl{
		targetsRepo: targetsRepo,
	}
}

func (s *TargetsServiceImpl) GetActive(ctx context.Context, userID string) (*repository.TargetsConfig, error) {
	if s.targetsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.targetsRepo.GetActive(ctx, userID)
}

func (s *TargetsServiceImpl) Resolve(ctx context.Context, userID string) model.NutritionTargets {
	if s.targetsRepo == nil || userID == "" {
		return model.DefaultNutritionTargets
	}
	config, err := s.targetsRepo.GetActive(ctx, userID)
	if err != nil || config == nil || config.Targets.IsZero() {
		return model.DefaultNutritionTargets
	}
	return config.Targets
}

func (s *TargetsServiceImpl) Update(ctx context.Context, userID string, targets model.NutritionTargets, source string) (*repository.TargetsConfig, error) {
	if s.targetsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.targetsRepo.Create(ctx, userID, targets, source)
}

func (s *TargetsServiceImpl) List(ctx context.Context, userID string, limit int) ([]repository.TargetsConfig, error) {
	if s.targetsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.targetsRepo.List(ctx, userID, limit)
}

// ComputeFromProfile derives daily targets from a user profile.
//
// BMR uses Mifflin-St Jeor, TDEE multiplies BMR by the activity level, and
// the macro split is 30/40/30 protein/carb/fat by calories. The profile is
// validated up front; implausible ages or unknown activity levels are
// rejected rather than clamped.
func (s *TargetsServiceImpl) ComputeFromProfile(profile Profile) (model.NutritionTargets, error) {
	if profile.Age <= 0 || profile.Age > 130 {
		return model.NutritionTargets{}, ErrInvalidProfile
	}
	if profile.HeightCM <= 0 || profile.WeightKG <= 0 {
		return model.NutritionTargets{}, ErrInvalidProfile
	}
	if profile.Sex != "male" && profile.Sex != "female" {
		return model.NutritionTargets{}, ErrInvalidProfile
	}
	mult, ok := activityMultipliers[profile.ActivityLevel]
	if !ok {
		return model.NutritionTargets{}, ErrInvalidProfile
	}

	bmr := 10*profile.WeightKG + 6.25*profile.HeightCM - 5*float64(profile.Age)
	if profile.Sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * mult

	return model.NutritionTargets{
		Calories:      math.Round(tdee),
		Protein:       math.Round(tdee * proteinCalorieShare / caloriesPerGramProtein),
		Carbohydrates: math.Round(tdee * carbCalorieShare / caloriesPerGramCarb),
		Fat:           math.Round(tdee * fatCalorieShare / caloriesPerGramFat),
	}, nil
}
