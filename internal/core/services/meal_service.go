package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type MealService struct {
	meals *collection.Collection[int, domain.MealPrep]
}

func NewMealService(meals *collection.Collection[int, domain.MealPrep]) *MealService {
	return &MealService{
		meals: meals,
	}
}

func (s *MealService) List() []domain.MealPrep {
	return s.meals.List()
}

func (s *MealService) Get(id int) (domain.MealPrep, error) {
	return s.meals.Find(id)
}

func (s *MealService) ForDate(date string) []domain.MealPrep {
	var out []domain.MealPrep
	for _, m := range s.meals.List() {
		if m.ScheduledDate == date {
			out = append(out, m)
		}
	}
	return out
}

func (s *MealService) Add(ctx context.Context, draft domain.MealDraft) (domain.MealPrep, error) {
	return s.meals.Add(ctx, func(current []domain.MealPrep) (domain.MealPrep, error) {
		return draft.Build(collection.NextID(current)), nil
	})
}

// Update cannot reschedule a meal; MealPatch has no scheduling fields.
func (s *MealService) Update(ctx context.Context, id int, patch domain.MealPatch) (domain.MealPrep, error) {
	return s.meals.Update(ctx, id, func(m domain.MealPrep) (domain.MealPrep, error) {
		return patch.Apply(m), nil
	})
}

func (s *MealService) Delete(ctx context.Context, id int) error {
	return s.meals.Delete(ctx, id)
}

func (s *MealService) ToggleCompletion(ctx context.Context, id int) (domain.MealPrep, error) {
	return s.meals.Update(ctx, id, func(m domain.MealPrep) (domain.MealPrep, error) {
		return m.ToggleCompletion(), nil
	})
}
