package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/health"
	"notekeeper-be/internal/metrics"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/implementation"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/pkg/events"
	pktNats "notekeeper-be/pkg/nats"
	"notekeeper-be/pkg/shutdown"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	NoteController   controller.INoteController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ActivityConsumer service.IActivityConsumer

	// Closers releases what the container opened, last opened first.
	Closers []shutdown.Hook
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.ILogger, reg *prometheus.Registry) (*Container, error) {
	if cfg.Auth.JwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	metrics.Register(reg)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	deps := map[string]health.Pinger{
		"postgres": health.PingFunc(sqlDB.PingContext),
	}
	var closers []shutdown.Hook

	// 2. Token denylist: redis when configured, otherwise process memory
	var denylist contract.TokenDenylist
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("bootstrap", "redis not reachable yet", map[string]interface{}{"error": err.Error()})
		}
		denylist = implementation.NewRedisTokenDenylist(rdb)
		deps["redis"] = health.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		closers = append(closers, shutdown.Hook{Name: "redis", Fn: func(context.Context) error { return rdb.Close() }})
	} else {
		log.Info("bootstrap", "using in-memory token denylist", nil)
		denylist = memory.NewTokenDenylist()
	}

	// 3. Event Bus
	bus := events.NewBus(cfg.Events.Topic, logger.NewWatermillAdapter(log, "events"))
	publishers := events.FanOut{bus}
	closers = append(closers, shutdown.Hook{Name: "event bus", Fn: func(context.Context) error { return bus.Close() }})

	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.Events.NatsURL)
		if err != nil {
			log.Warn("bootstrap", "NATS publisher disabled", map[string]interface{}{"error": err.Error()})
		} else {
			publishers = append(publishers, natsPub)
			deps["nats"] = health.PingFunc(natsPub.Ping)
			closers = append(closers, shutdown.Hook{Name: "nats", Fn: func(context.Context) error {
				natsPub.Close()
				return nil
			}})
		}
	}

	// 4. Services
	noteService := service.NewNoteService(uowFactory, publishers, log)
	authService := service.NewAuthService(uowFactory, denylist, []byte(cfg.Auth.JwtSecret), cfg.Auth.TokenTTL, log)
	activityConsumer := service.NewActivityConsumer(bus, log)

	checker := health.NewChecker(deps, log, reg)
	authMiddleware := serverutils.NewJwtMiddleware([]byte(cfg.Auth.JwtSecret), denylist)

	slices.Reverse(closers)

	// 5. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService, authMiddleware),
		NoteController:   controller.NewNoteController(noteService, authMiddleware),
		HealthController: controller.NewHealthController(checker, reg),

		ActivityConsumer: activityConsumer,
		Closers:          closers,
	}, nil
}
