package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/recipe-api/internal/app"
	"github.com/iliyamo/recipe-api/internal/config"
	"github.com/iliyamo/recipe-api/internal/handler"
	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/middleware"
	"github.com/iliyamo/recipe-api/internal/queue"
	"github.com/iliyamo/recipe-api/internal/router"
	"github.com/iliyamo/recipe-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load() // .env is optional

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Redis is optional: without it the limiter and cache pass through.
	var rdb *redis.Client
	if c, err := config.NewRedisClient(ctx, config.LoadRedisConfig()); err != nil {
		log.Warn(ctx, "redis unavailable; rate limiting and caching disabled", "err", err)
	} else {
		rdb = c
		defer rdb.Close()
	}

	var events service.EventPublisher = queue.NopPublisher{}
	if qc := config.LoadQueueConfig(); qc.Enabled {
		p := queue.NewPublisher(qc.URL, qc.Queue)
		defer p.Close()
		events = p
		log.Info(ctx, "publishing domain events", "queue", qc.Queue)
	}

	accounts := service.NewAccountService(store.Users, events, service.PasswordPolicy{
		MinLength:  cfg.PasswordMinLen,
		BcryptCost: cfg.BcryptCost,
	}, log)
	auth := service.NewAuthService(store.Users, store.Tokens, cfg.TokenSecret, cfg.TokenTTL, log)
	tags := service.NewTagService(store.Tags, events, log)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(log))

	tokenAuth := middleware.TokenAuth(auth)
	router.RegisterRoutes(e)
	router.RegisterUser(e, handler.NewUserHandler(accounts, auth, log), tokenAuth,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterRecipe(e, handler.NewTagHandler(tags, log), tokenAuth,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", addr, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Error(c.Request().Context(), "request", append(args, "err", v.Error)...)
				return nil
			}
			log.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}
