package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func ready[K comparable, T domain.Entity[K, T]](c *collection.Collection[K, T]) *collection.Collection[K, T] {
	c.Initialize(context.Background())
	return c
}

func newHabitService(store domain.RecordStore) *services.HabitService {
	return services.NewHabitService(ready(collection.New[int](domain.KeyHabits, store, collection.Config[domain.Habit]{
		Seed:     domain.SeedHabits,
		NotFound: domain.ErrHabitNotFound,
	})))
}

func newMealService(store domain.RecordStore) *services.MealService {
	return services.NewMealService(ready(collection.New[int](domain.KeyMeals, store, collection.Config[domain.MealPrep]{
		Seed:     func() []domain.MealPrep { return domain.SeedMeals(fixedNow) },
		NotFound: domain.ErrMealNotFound,
	})))
}

func newSupplementService(store domain.RecordStore) *services.SupplementService {
	return services.NewSupplementService(ready(collection.New[int](domain.KeySupplements, store, collection.Config[domain.Supplement]{
		Seed:     func() []domain.Supplement { return domain.SeedSupplements(fixedNow) },
		NotFound: domain.ErrSupplementNotFound,
	})))
}

func newAddictionService(store domain.RecordStore) *services.AddictionService {
	return services.NewAddictionService(ready(collection.New[int](domain.KeyAddictions, store, collection.Config[domain.Addiction]{
		Seed:     func() []domain.Addiction { return domain.SeedAddictions(fixedNow) },
		NotFound: domain.ErrAddictionNotFound,
	}))).WithClock(func() time.Time { return fixedNow })
}

func newAuthService(t *testing.T, store domain.RecordStore) *services.AuthService {
	t.Helper()
	auth, err := services.NewAuthService(ready(collection.New[int](domain.KeyUser, store, collection.Config[domain.User]{
		Codec:    collection.RecordCodec[domain.User]{},
		NotFound: domain.ErrUserNotFound,
	})), nil)
	require.NoError(t, err)
	return auth
}

func newStore() *repository.InMemoryRecordStore {
	return repository.NewInMemoryRecordStore()
}
