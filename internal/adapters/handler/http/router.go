package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-wellness/internal/app"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

type RouterDependencies struct {
	AuthHandler       *AuthHandler
	HabitHandler      *HabitHandler
	MealHandler       *MealHandler
	SupplementHandler *SupplementHandler
	AddictionHandler  *AddictionHandler
	ReminderHandler   *ReminderHandler
	ThemeHandler      *ThemeHandler
	CoachHandler      *CoachHandler
	DashboardHandler  *DashboardHandler

	Tokens         middleware.TokenValidator
	Health         func(ctx context.Context) app.Health
	Redis          *redis.Client
	RateLimit      int
	AllowedOrigins []string
	Logger         *zap.Logger
	StartTime      time.Time
}

// DependenciesFromApp builds every handler over the services of a.
func DependenciesFromApp(a *app.App, logger *zap.Logger) RouterDependencies {
	cfg := a.Config()
	return RouterDependencies{
		AuthHandler:       NewAuthHandler(a.AuthService, a.TokenService),
		HabitHandler:      NewHabitHandler(a.HabitService),
		MealHandler:       NewMealHandler(a.MealService),
		SupplementHandler: NewSupplementHandler(a.SupplementService),
		AddictionHandler:  NewAddictionHandler(a.AddictionService),
		ReminderHandler:   NewReminderHandler(a.ReminderService),
		ThemeHandler:      NewThemeHandler(a.ThemeService),
		CoachHandler:      NewCoachHandler(a.CoachService),
		DashboardHandler:  NewDashboardHandler(a.StatsService),
		Tokens:            a.TokenService,
		Health:            a.Health,
		Redis:             a.Redis(),
		RateLimit:         cfg.RateLimit,
		AllowedOrigins:    cfg.Origins(),
		Logger:            logger,
		StartTime:         time.Now(),
	}
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	corsConfig := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.AllowedOrigins
	}
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, time.Minute, deps.Logger))
	}

	router.GET("/health", func(c *gin.Context) {
		h := deps.Health(c.Request.Context())

		status := "ok"
		if !h.Ready || len(h.Pending) > 0 {
			status = "degraded"
		}
		code := http.StatusOK
		if !h.Reachable {
			status = "unreachable"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"store":  h.Store,
			"ready":  h.Ready,
			"dirty":  h.Pending,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))

	deps.AuthHandler.RegisterRoutes(apiV1, protected)
	{
		deps.HabitHandler.RegisterRoutes(protected)
		deps.MealHandler.RegisterRoutes(protected)
		deps.SupplementHandler.RegisterRoutes(protected)
		deps.AddictionHandler.RegisterRoutes(protected)
		deps.ReminderHandler.RegisterRoutes(protected)
		deps.ThemeHandler.RegisterRoutes(protected)
		deps.CoachHandler.RegisterRoutes(protected)
		deps.DashboardHandler.RegisterRoutes(protected)
	}

	return router
}
