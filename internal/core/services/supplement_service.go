package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type SupplementService struct {
	supplements *collection.Collection[int, domain.Supplement]
}

func NewSupplementService(supplements *collection.Collection[int, domain.Supplement]) *SupplementService {
	return &SupplementService{
		supplements: supplements,
	}
}

func (s *SupplementService) List() []domain.Supplement {
	return s.supplements.List()
}

func (s *SupplementService) Get(id int) (domain.Supplement, error) {
	return s.supplements.Find(id)
}

func (s *SupplementService) Add(ctx context.Context, draft domain.SupplementDraft) (domain.Supplement, error) {
	return s.supplements.Add(ctx, func(current []domain.Supplement) (domain.Supplement, error) {
		return draft.Build(collection.NextID(current)), nil
	})
}

func (s *SupplementService) Update(ctx context.Context, id int, patch domain.SupplementPatch) (domain.Supplement, error) {
	return s.supplements.Update(ctx, id, func(sp domain.Supplement) (domain.Supplement, error) {
		return patch.Apply(sp), nil
	})
}

func (s *SupplementService) Delete(ctx context.Context, id int) error {
	return s.supplements.Delete(ctx, id)
}

func (s *SupplementService) ToggleCompletion(ctx context.Context, id int) (domain.Supplement, error) {
	return s.supplements.Update(ctx, id, func(sp domain.Supplement) (domain.Supplement, error) {
		return sp.ToggleCompletion(), nil
	})
}
