package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type HabitService struct {
	habits *collection.Collection[int, domain.Habit]
}

func NewHabitService(habits *collection.Collection[int, domain.Habit]) *HabitService {
	return &HabitService{
		habits: habits,
	}
}

func (s *HabitService) List() []domain.Habit {
	return s.habits.List()
}

func (s *HabitService) Get(id int) (domain.Habit, error) {
	return s.habits.Find(id)
}

// Add trusts draft to be validated by the caller.
func (s *HabitService) Add(ctx context.Context, draft domain.HabitDraft) (domain.Habit, error) {
	return s.habits.Add(ctx, func(current []domain.Habit) (domain.Habit, error) {
		return draft.Build(collection.NextID(current)), nil
	})
}

func (s *HabitService) Update(ctx context.Context, id int, patch domain.HabitPatch) (domain.Habit, error) {
	return s.habits.Update(ctx, id, func(h domain.Habit) (domain.Habit, error) {
		return patch.Apply(h), nil
	})
}

func (s *HabitService) Delete(ctx context.Context, id int) error {
	return s.habits.Delete(ctx, id)
}

func (s *HabitService) ToggleCompletion(ctx context.Context, id int) (domain.Habit, error) {
	return s.habits.Update(ctx, id, func(h domain.Habit) (domain.Habit, error) {
		return h.ToggleCompletion(), nil
	})
}
