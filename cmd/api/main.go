package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskmanager/db/migrations"
	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/memory"
	"taskmanager/internal/adapter/mongostore"
	"taskmanager/internal/adapter/password"
	"taskmanager/internal/adapter/ratelimit"
	"taskmanager/internal/adapter/token"
	"taskmanager/internal/app/service"
	"taskmanager/internal/config"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/translator"
)

type stores struct {
	tasks ports.TaskRepository
	users ports.UserRepository
	close func(ctx context.Context) error
}

func main() {
	cfg := config.LoadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	st, err := openStores(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	tokens := token.NewJWTManager(token.Config{
		SecretKey: cfg.JWTSecret,
		ExpiresIn: cfg.JWTExpiresIn,
		Issuer:    cfg.JWTIssuer,
	})
	authService := service.NewAuthService(st.users, password.NewBcryptHasher(cfg.BcryptCost), tokens)
	taskService := service.NewTaskService(st.tasks)

	var rateLimit httpadapter.AuthRateLimit
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rateLimit = httpadapter.AuthRateLimit{
			Limiter: ratelimit.NewSlidingWindowLimiter(redisClient, "ratelimit:auth:", cfg.AuthRateLimit, cfg.AuthRateWindow),
			Limit:   cfg.AuthRateLimit,
		}
	}

	r, err := httpadapter.NewRouter(logger, httpadapter.RouterConfig{
		Development:    cfg.IsDevelopment(),
		CorsOrigins:    cfg.CorsOrigins,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(st.tasks, cfg.AppName, cfg.AppVersion),
		Auth:   handlers.NewAuthHandler(authService),
		Task:   handlers.NewTaskHandler(taskService),
	}, authService, rateLimit)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}
	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("store", cfg.StoreDriver),
			zap.Bool("rate_limit", rateLimit.Limiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	operations := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
		"store": st.close,
	}
	if redisClient != nil {
		operations["redis"] = func(context.Context) error {
			return redisClient.Close()
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)
	exitCode := <-wait
	logger.Info("server stopped", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return stores{}, fmt.Errorf("connect to mongodb: %w", err)
		}
		database := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return stores{}, err
		}
		return stores{
			tasks: mongostore.NewTaskRepository(database),
			users: mongostore.NewUserRepository(database),
			close: client.Disconnect,
		}, nil

	case config.StoreMySQL:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			return stores{}, fmt.Errorf("connect to mysql: %w", err)
		}
		if err := dbadapter.Migrate(ctx, db, migrations.FS); err != nil {
			_ = db.Close()
			return stores{}, fmt.Errorf("migrate mysql: %w", err)
		}
		return stores{
			tasks: dbadapter.NewTaskRepository(db),
			users: dbadapter.NewUserRepository(db),
			close: func(context.Context) error { return db.Close() },
		}, nil

	default:
		zap.L().Warn("using in-memory store, data is lost on restart")
		return stores{
			tasks: memory.NewTaskRepository(),
			users: memory.NewUserRepository(),
			close: func(context.Context) error { return nil },
		}, nil
	}
}
