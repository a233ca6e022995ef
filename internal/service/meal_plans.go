package service

import (
	"context"
	"errors"
	"time"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
)

// ErrInvalidPlanDate is returned when a plan date is not in YYYY-MM-DD form.
var ErrInvalidPlanDate = errors.New("plan date must be in YYYY-MM-DD form")

// planDateLayout is the canonical date format for saved plans.
const planDateLayout = "2006-01-02"

// MealPlansService provides meal plan persistence operations.
type MealPlansService interface {
	Save(ctx context.Context, userID, date string, result model.OptimizationResult) (*repository.MealPlanDocument, error)
	Get(ctx context.Context, userID, date string) (*repository.MealPlanDocument, error)
	List(ctx context.Context, userID string, limit int) ([]repository.MealPlanDocument, error)
	Delete(ctx context.Context, userID, date string) (bool, error)
}

// MealPlansServiceImpl implements MealPlansService.
type MealPlansServiceImpl struct {
	plansRepo repository.MealPlansRepositoryInterface
}

// NewMealPlansService creates a new meal plans service.
func NewMealPlansService(plansRepo repository.MealPlansRepositoryInterface) MealPlansService {
	if plansRepo == nil {
		return &MealPlansServiceImpl{}
	}
	return &MealPlansServiceImpl{
		plansRepo: plansRepo,
	}
}

func (s *MealPlansServiceImpl) Save(ctx context.Context, userID, date string, result model.OptimizationResult) (*repository.MealPlanDocument, error) {
	if s.plansRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if _, err := time.Parse(planDateLayout, date); err != nil {
		return nil, ErrInvalidPlanDate
	}

	plan := &repository.MealPlanDocument{
		UserID:   userID,
		Date:     date,
		Portions: result.Portions,
		Totals:   result.Totals,
		Targets:  result.Targets,
	}
	return s.plansRepo.Save(ctx, plan)
}

func (s *MealPlansServiceImpl) Get(ctx context.Context, userID, date string) (*repository.MealPlanDocument, error) {
	if s.plansRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.plansRepo.FindByUserAndDate(ctx, userID, date)
}

func (s *MealPlansServiceImpl) List(ctx context.Context, userID string, limit int) ([]repository.MealPlanDocument, error) {
	if s.plansRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.plansRepo.ListByUser(ctx, userID, limit)
}

func (s *MealPlansServiceImpl) Delete(ctx context.Context, userID, date string) (bool, error) {
	if s.plansRepo == nil {
		return false, ErrRepositoryNotConfigured
	}
	return s.plansRepo.Delete(ctx, userID, date)
}
