package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type AddictionService struct {
	addictions *collection.Collection[int, domain.Addiction]
	tips       []domain.AddictionTip
	now        func() time.Time
}

func NewAddictionService(addictions *collection.Collection[int, domain.Addiction]) *AddictionService {
	return &AddictionService{
		addictions: addictions,
		tips:       domain.AddictionTips(),
		now:        time.Now,
	}
}

// WithClock replaces the time source used to stamp createdAt and relapses.
func (s *AddictionService) WithClock(now func() time.Time) *AddictionService {
	s.now = now
	return s
}

func (s *AddictionService) List() []domain.Addiction {
	return s.addictions.List()
}

func (s *AddictionService) Get(id int) (domain.Addiction, error) {
	return s.addictions.Find(id)
}

func (s *AddictionService) Add(ctx context.Context, draft domain.AddictionDraft) (domain.Addiction, error) {
	now := s.now()
	return s.addictions.Add(ctx, func(current []domain.Addiction) (domain.Addiction, error) {
		return draft.Build(collection.NextID(current), now), nil
	})
}

func (s *AddictionService) Update(ctx context.Context, id int, patch domain.AddictionPatch) (domain.Addiction, error) {
	return s.update(ctx, id, patch.Apply)
}

func (s *AddictionService) Delete(ctx context.Context, id int) error {
	return s.addictions.Delete(ctx, id)
}

func (s *AddictionService) IncrementSoberDay(ctx context.Context, id int) (domain.Addiction, error) {
	return s.update(ctx, id, domain.Addiction.IncrementSoberDay)
}

func (s *AddictionService) RecordRelapse(ctx context.Context, id int) (domain.Addiction, error) {
	now := s.now()
	return s.update(ctx, id, func(a domain.Addiction) domain.Addiction {
		return a.RecordRelapse(now)
	})
}

func (s *AddictionService) AddTrigger(ctx context.Context, id int, trigger string) (domain.Addiction, error) {
	return s.update(ctx, id, func(a domain.Addiction) domain.Addiction {
		return a.AddTrigger(trigger)
	})
}

func (s *AddictionService) RemoveTrigger(ctx context.Context, id int, trigger string) (domain.Addiction, error) {
	return s.update(ctx, id, func(a domain.Addiction) domain.Addiction {
		return a.RemoveTrigger(trigger)
	})
}

func (s *AddictionService) AddCopingStrategy(ctx context.Context, id int, strategy string) (domain.Addiction, error) {
	return s.update(ctx, id, func(a domain.Addiction) domain.Addiction {
		return a.AddCopingStrategy(strategy)
	})
}

func (s *AddictionService) RemoveCopingStrategy(ctx context.Context, id int, strategy string) (domain.Addiction, error) {
	return s.update(ctx, id, func(a domain.Addiction) domain.Addiction {
		return a.RemoveCopingStrategy(strategy)
	})
}

func (s *AddictionService) update(ctx context.Context, id int, fn func(domain.Addiction) domain.Addiction) (domain.Addiction, error) {
	return s.addictions.Update(ctx, id, func(a domain.Addiction) (domain.Addiction, error) {
		return fn(a), nil
	})
}

func (s *AddictionService) Tips() []domain.AddictionTip {
	out := make([]domain.AddictionTip, len(s.tips))
	copy(out, s.tips)
	return out
}

// TipsFor filters the tips by addiction type and, when category is not
// empty, by category.
func (s *AddictionService) TipsFor(addictionType domain.AddictionType, category domain.TipCategory) []domain.AddictionTip {
	var out []domain.AddictionTip
	for _, tip := range s.tips {
		if tip.Matches(addictionType, category) {
			out = append(out, tip)
		}
	}
	return out
}

// TipsByCategory filters the tips by category alone. An empty category
// returns every tip.
func (s *AddictionService) TipsByCategory(category domain.TipCategory) []domain.AddictionTip {
	var out []domain.AddictionTip
	for _, tip := range s.tips {
		if category == "" || tip.Category == category {
			out = append(out, tip)
		}
	}
	return out
}

func (s *AddictionService) Active() []domain.Addiction {
	return domain.ActiveAddictions(s.addictions.List())
}

func (s *AddictionService) ByType(t domain.AddictionType) []domain.Addiction {
	return domain.AddictionsByType(s.addictions.List(), t)
}

func (s *AddictionService) TotalSoberDays() int {
	return domain.TotalSoberDays(s.addictions.List())
}

func (s *AddictionService) LongestStreak() int {
	return domain.LongestSoberStreak(s.addictions.List())
}

func (s *AddictionService) Recovery() domain.RecoveryStats {
	return domain.Recovery(s.addictions.List())
}
