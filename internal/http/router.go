package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/mealtrack/internal/cache"
	"github.com/geocoder89/mealtrack/internal/config"
	"github.com/geocoder89/mealtrack/internal/http/handlers"
	"github.com/geocoder89/mealtrack/internal/http/middlewares"
	"github.com/geocoder89/mealtrack/internal/observability"
	"github.com/geocoder89/mealtrack/internal/repo/postgres"
	"github.com/geocoder89/mealtrack/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// NewRouter wires every store, the session guard and the handlers
// explicitly; nothing hangs off package-level state.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	slog.SetDefault(log)

	// metrics registry
	promRegistry := prometheus.NewRegistry()
	prom := observability.NewProm(promRegistry)

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("mealtrack"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	mealsRepo := postgres.NewMealsRepo(pool, prom)

	// the session guard resolves users through the same store
	sessions := session.NewManager(usersRepo, cfg.SessionTTL, cfg.Env)
	guard := middlewares.NewSessionMiddleware(sessions)

	metricsCache := cache.New(cfg.MetricsCacheTTL)

	usersHandler := handlers.NewUsersHandler(usersRepo, usersRepo, sessions)
	mealsHandler := handlers.NewMealsHandlerWithCache(mealsRepo, metricsCache)

	users := r.Group("/users")
	{
		users.POST("/signup", usersHandler.Signup)
		users.POST("/auth", usersHandler.Login)

		users.GET("", guard.RequireSession(), usersHandler.Me)
		users.POST("/update", guard.RequireSession(), usersHandler.Update)
	}

	meals := r.Group("/meals", guard.RequireSession())
	{
		meals.GET("", mealsHandler.ListMeals)
		meals.POST("", mealsHandler.CreateMeal)
		meals.GET("/metrics", mealsHandler.Metrics)
		meals.GET("/:id", mealsHandler.GetMealById)
		meals.PUT("/:id", mealsHandler.UpdateMeal)
		meals.DELETE("/:id", mealsHandler.DeleteMeal)
	}

	return r
}
