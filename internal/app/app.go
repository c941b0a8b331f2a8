// Package app assembles the application state: one collection per persisted
// key, the services over them and the background workers. Presentation
// adapters receive the *App by handle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/coach"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/workers"
)

type App struct {
	cfg     config.Config
	logger  *zap.Logger
	backend *Backend
	coach   domain.Coach
	now     func() time.Time

	Habits      *collection.Collection[int, domain.Habit]
	Meals       *collection.Collection[int, domain.MealPrep]
	Supplements *collection.Collection[int, domain.Supplement]
	Addictions  *collection.Collection[int, domain.Addiction]
	User        *collection.Collection[int, domain.User]
	Reminders   *collection.Collection[string, domain.Reminder]
	Themes      *collection.Collection[string, domain.Theme]
	CoachConfig *collection.Collection[int, domain.CoachSettings]

	HabitService      *services.HabitService
	MealService       *services.MealService
	SupplementService *services.SupplementService
	AddictionService  *services.AddictionService
	AuthService       *services.AuthService
	TokenService      *services.TokenService
	ReminderService   *services.ReminderService
	ThemeService      *services.ThemeService
	CoachService      *services.CoachService
	StatsService      *services.StatsService

	SyncWorker     *workers.SyncWorker
	ReminderWorker *workers.ReminderWorker

	stopMu sync.Mutex
	stop   context.CancelFunc
}

type Option func(*App)

// WithClock replaces the wall clock used for seeds and timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithCoach replaces the coach selected by COACH_PROVIDER.
func WithCoach(c domain.Coach) Option {
	return func(a *App) { a.coach = c }
}

// New opens the configured backend and assembles the application.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a, err := NewWithBackend(ctx, backend, cfg, logger, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return a, nil
}

func NewWithBackend(ctx context.Context, backend *Backend, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.coach == nil {
		c, err := newCoach(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		a.coach = c
	}

	// The worker must exist before the collections so their dirty hook can
	// reach it.
	a.SyncWorker = workers.NewSyncWorker(cfg.SyncInterval, logger)

	a.Habits = a.newHabits()
	a.Meals = a.newMeals()
	a.Supplements = a.newSupplements()
	a.Addictions = a.newAddictions()
	a.User = a.newUser()
	a.Reminders = a.newReminders()
	a.Themes = a.newThemes()
	a.CoachConfig = a.newCoachConfig()

	a.SyncWorker.Register(a.Habits, a.Meals, a.Supplements, a.Addictions, a.User, a.Reminders, a.Themes, a.CoachConfig)

	auth, err := services.NewAuthService(a.User, logger)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.AuthService = auth
	a.TokenService = services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, auth)

	a.HabitService = services.NewHabitService(a.Habits)
	a.MealService = services.NewMealService(a.Meals)
	a.SupplementService = services.NewSupplementService(a.Supplements)
	a.AddictionService = services.NewAddictionService(a.Addictions).WithClock(a.now)
	a.ReminderService = services.NewReminderService(a.Reminders).WithClock(a.now)
	a.ThemeService = services.NewThemeService(a.Themes, auth)
	a.CoachService = services.NewCoachService(a.CoachConfig, a.coach, logger)
	a.StatsService = services.NewStatsService(a.HabitService, a.MealService, a.SupplementService, a.AddictionService).WithClock(a.now)

	notifier := workers.NewVoiceNotifier(a.CoachService, logger)
	a.ReminderWorker = workers.NewReminderWorker(a.ReminderService, notifier, cfg.ReminderInterval, logger)

	return a, nil
}

func newCoach(ctx context.Context, cfg config.Config, logger *zap.Logger) (domain.Coach, error) {
	switch cfg.CoachProvider {
	case "", "mock":
		return coach.NewMockCoach(logger), nil
	case "gemini":
		c, err := coach.NewGeminiCoach(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("app: unknown coach provider %q", cfg.CoachProvider)
	}
}

func collectionConfig[T any](a *App, seed func() []T, notFound error) collection.Config[T] {
	return collection.Config[T]{
		Seed:         seed,
		NotFound:     notFound,
		Logger:       a.logger,
		WriteTimeout: a.cfg.WriteTimeout,
		OnDirty:      a.SyncWorker.Enqueue,
	}
}

func (a *App) newHabits() *collection.Collection[int, domain.Habit] {
	return collection.New[int](domain.KeyHabits, a.backend.Store,
		collectionConfig(a, domain.SeedHabits, domain.ErrHabitNotFound))
}

func (a *App) newMeals() *collection.Collection[int, domain.MealPrep] {
	return collection.New[int](domain.KeyMeals, a.backend.Store,
		collectionConfig(a, func() []domain.MealPrep { return domain.SeedMeals(a.now()) }, domain.ErrMealNotFound))
}

func (a *App) newSupplements() *collection.Collection[int, domain.Supplement] {
	return collection.New[int](domain.KeySupplements, a.backend.Store,
		collectionConfig(a, func() []domain.Supplement { return domain.SeedSupplements(a.now()) }, domain.ErrSupplementNotFound))
}

func (a *App) newAddictions() *collection.Collection[int, domain.Addiction] {
	return collection.New[int](domain.KeyAddictions, a.backend.Store,
		collectionConfig(a, func() []domain.Addiction { return domain.SeedAddictions(a.now()) }, domain.ErrAddictionNotFound))
}

// The user key holds a single object and starts logged out.
func (a *App) newUser() *collection.Collection[int, domain.User] {
	cfg := collectionConfig[domain.User](a, nil, domain.ErrUserNotFound)
	cfg.Codec = collection.RecordCodec[domain.User]{}
	return collection.New[int](domain.KeyUser, a.backend.Store, cfg)
}

func (a *App) newReminders() *collection.Collection[string, domain.Reminder] {
	return collection.New[string](domain.KeyReminders, a.backend.Store,
		collectionConfig[domain.Reminder](a, nil, domain.ErrReminderNotFound))
}

func (a *App) newThemes() *collection.Collection[string, domain.Theme] {
	return collection.New[string](domain.KeyThemes, a.backend.Store,
		collectionConfig[domain.Theme](a, nil, domain.ErrThemeNotFound))
}

func (a *App) newCoachConfig() *collection.Collection[int, domain.CoachSettings] {
	cfg := collectionConfig(a, func() []domain.CoachSettings {
		return []domain.CoachSettings{domain.DefaultCoachSettings()}
	}, nil)
	cfg.Codec = collection.RecordCodec[domain.CoachSettings]{}
	return collection.New[int](domain.KeyCoach, a.backend.Store, cfg)
}

type initializer interface {
	Key() string
	Initialize(ctx context.Context)
}

func (a *App) collections() []initializer {
	return []initializer{a.User, a.Habits, a.Meals, a.Supplements, a.Addictions, a.Reminders, a.Themes, a.CoachConfig}
}

// Load initializes every collection concurrently. Individual read failures
// fall back to defaults; Load only fails when ctx ends first.
func (a *App) Load(ctx context.Context) error {
	start := a.now()
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range a.collections() {
		g.Go(func() error {
			c.Initialize(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("app: load: %w", err)
	}
	a.logger.Info("application state loaded",
		zap.String("store", a.backend.Driver),
		zap.Duration("elapsed", a.now().Sub(start)),
	)
	return nil
}

// Start runs the sync and reminder workers until Close.
func (a *App) Start(ctx context.Context) {
	a.stopMu.Lock()
	defer a.stopMu.Unlock()
	if a.stop != nil {
		return
	}

	workerCtx, cancel := context.WithCancel(ctx)
	a.stop = cancel
	a.SyncWorker.Start(workerCtx)
	a.ReminderWorker.Start(workerCtx)
}

// Resume retries every pending write, for example after the device comes
// back to the foreground.
func (a *App) Resume(ctx context.Context) error {
	if err := a.SyncWorker.FlushAll(ctx); err != nil {
		a.logger.Warn("some collections are still pending", zap.Strings("pending", a.SyncWorker.Pending()), zap.Error(err))
		return err
	}
	return nil
}

type Health struct {
	Store     string   `json:"store"`
	Reachable bool     `json:"reachable"`
	Pending   []string `json:"pending"`
	Ready     bool     `json:"ready"`
}

func (a *App) Health(ctx context.Context) Health {
	h := Health{
		Store:     a.backend.Driver,
		Reachable: a.backend.Ping(ctx) == nil,
		Pending:   a.SyncWorker.Pending(),
		Ready:     true,
	}
	if h.Pending == nil {
		h.Pending = []string{}
	}
	for _, c := range []interface{ State() collection.State }{
		a.User, a.Habits, a.Meals, a.Supplements, a.Addictions, a.Reminders, a.Themes, a.CoachConfig,
	} {
		if c.State() != collection.StateReady {
			h.Ready = false
		}
	}
	return h
}

func (a *App) Config() config.Config { return a.cfg }

// Close stops the workers, makes a last attempt at pending writes and
// releases the backend.
func (a *App) Close(ctx context.Context) error {
	a.stopMu.Lock()
	if a.stop != nil {
		a.stop()
		a.SyncWorker.Wait()
		a.ReminderWorker.Wait()
		a.stop = nil
	}
	a.stopMu.Unlock()

	var errs []error
	if err := a.SyncWorker.FlushAll(ctx); err != nil {
		errs = append(errs, err)
	}
	if closer, ok := a.coach.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.backend.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Redis returns the Redis client behind the store or cache, or nil.
func (a *App) Redis() *redis.Client { return a.backend.Redis }
