package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rogpool/service-reports/internal/api/handler"
	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
	"github.com/rogpool/service-reports/internal/core/service"
	"github.com/rogpool/service-reports/internal/infrastructure/db/mongo"
	"github.com/rogpool/service-reports/internal/infrastructure/db/redis"
	"github.com/rogpool/service-reports/internal/infrastructure/spreadsheet"
	"github.com/rogpool/service-reports/internal/pkg/config"
	"github.com/rogpool/service-reports/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// systemActor performs CLI operations that the API restricts to admins.
var systemActor = &domain.User{ID: "system", Username: "poolsvc-cli", Role: domain.RoleAdmin}

// app holds the wired dependencies shared by every command.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	mongo *mongodriver.Client
	db    *mongodriver.Database
	redis *goredis.Client

	auth    *service.AuthService
	users   *service.UserService
	clients *service.ClientService
	reports *service.ReportService
}

// loadDotEnv reads .env when present. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// bootstrap loads configuration, connects to the databases and builds the
// services. Redis is only dialled when withRedis is set and REDIS_ADDR is
// configured.
func bootstrap(ctx context.Context, withRedis bool) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Output:  os.Stderr,
		Service: "poolsvc",
	})
	if cfg.UsesDevSecret() {
		log.Warn().Msg("JWT_SECRET is not set, signing tokens with the development secret")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, mongo: client, db: db}

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		a.close()
		return nil, err
	}

	var revoker ports.TokenRevoker
	if withRedis && cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		a.redis = rdb
		revoker = redis.NewRevocationStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	userRepo := mongo.NewUserRepository(db)
	clientRepo := mongo.NewClientRepository(db)
	reportRepo := mongo.NewReportRepository(db)

	a.auth = service.NewAuthService(userRepo, revoker, cfg.Secret(), cfg.Auth.TokenTTL, log)
	a.users = service.NewUserService(userRepo, log)
	a.clients = service.NewClientService(clientRepo, spreadsheet.NewParser(), log)
	a.reports = service.NewReportService(reportRepo, clientRepo, log)
	return a, nil
}

// readinessChecks reports redis as disabled when it is not configured.
func (a *app) readinessChecks() map[string]handler.DependencyCheck {
	checks := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error {
			return a.mongo.Ping(ctx, readpref.Primary())
		},
		"redis": nil,
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		}
	}
	return checks
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
}
