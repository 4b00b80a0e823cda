// @title           ToDos API
// @version         1.0
// @description     Multi-user todo lists with token authentication and per-item ownership.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/todoapp/todos-api/internal/api"
	"github.com/todoapp/todos-api/internal/api/metrics"
	"github.com/todoapp/todos-api/internal/core/ports"
	"github.com/todoapp/todos-api/internal/core/service"
	"github.com/todoapp/todos-api/internal/infrastructure/config"
	"github.com/todoapp/todos-api/internal/infrastructure/db/memory"
	"github.com/todoapp/todos-api/internal/infrastructure/db/mongo"
	"github.com/todoapp/todos-api/internal/infrastructure/db/redis"
	"github.com/todoapp/todos-api/internal/infrastructure/http/handlers"
	"github.com/todoapp/todos-api/internal/infrastructure/queue"
	"github.com/todoapp/todos-api/internal/pkg/password"
	"github.com/todoapp/todos-api/internal/pkg/token"
	"github.com/todoapp/todos-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// stores groups the repositories selected by STORE_DRIVER.
type stores struct {
	users     ports.UserRepository
	todos     ports.TodoRepository
	activity  ports.ActivityRepository
	readiness map[string]handlers.Pinger
	close     func(ctx context.Context) error
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, envconfig.OsLookuper())
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "todos-api",
	})
	log := logger.Get()

	tokens, err := token.NewManager(cfg.SecretKey, token.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatal().Err(err).Msg("token manager")
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open stores")
	}

	var idem service.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		st.readiness["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency cache enabled")
	}

	dispatcher := queue.NewDispatcher(
		cfg.ActivityWorkers,
		service.NewActivityService(st.activity, log),
		log,
		queue.WithDepthGauge(metrics.ActivityQueueDepth),
		queue.WithDurationObserver(metrics.ActivityProcessingDuration),
	)
	dispatcher.Start(context.Background())

	router := api.NewRouter(api.Dependencies{
		Logger:      log,
		AuthService: service.NewAuthService(st.users, password.NewBcrypt(password.DefaultCost), tokens, log),
		TodoService: service.NewTodoService(st.todos, idem, dispatcher, log),
		Verifier:    tokens,
		Readiness:   st.readiness,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("api server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server run failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	dispatcher.Stop()
	if err := st.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("close stores failed")
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return &stores{
			users:     memory.NewUserRepository(),
			todos:     memory.NewTodoRepository(),
			activity:  memory.NewActivityRepository(),
			readiness: make(map[string]handlers.Pinger),
			close:     func(context.Context) error { return nil },
		}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}

	users := mongo.NewUserRepository(db)
	todos := mongo.NewTodoRepository(db)
	activity := mongo.NewActivityRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, todos, activity); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	return &stores{
		users:    users,
		todos:    todos,
		activity: activity,
		readiness: map[string]handlers.Pinger{
			"mongodb": handlers.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			}),
		},
		close: client.Disconnect,
	}, nil
}
