package main

import (
	"context"
	"log"

	"notekeeper-be/internal/bootstrap"
	"notekeeper-be/internal/config"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/server"
	"notekeeper-be/internal/tracer"
	"notekeeper-be/pkg/database"
	"notekeeper-be/pkg/shutdown"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(ctx, cfg.Otel, sysLogger)

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	container, err := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger, reg)
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}

	// 5. Start Background Services
	if err := container.ActivityConsumer.Consume(ctx); err != nil {
		log.Fatalf("Unable to start activity consumer: %v", err)
	}

	// 6. Initialize and Run Server
	srv := server.New(cfg, container, sysLogger)
	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("server", "server stopped", map[string]interface{}{"error": err})
			cancel()
		}
	}()

	// 7. Graceful Shutdown: stop traffic first, then what handlers depend on
	hooks := []shutdown.Hook{{Name: "http server", Fn: srv.Shutdown}}
	hooks = append(hooks, container.Closers...)
	hooks = append(hooks,
		shutdown.Hook{Name: "activity consumer", Fn: func(ctx context.Context) error {
			select {
			case <-container.ActivityConsumer.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}},
		shutdown.Hook{Name: "database", Fn: func(context.Context) error { return database.Close(gormDB) }},
		shutdown.Hook{Name: "tracer", Fn: shutdownTracer},
	)

	err = shutdown.Wait(ctx, cfg.App.ShutdownTimeout, hooks...)
	if err != nil {
		sysLogger.Error("server", "shutdown finished with errors", map[string]interface{}{"error": err})
	} else {
		sysLogger.Info("server", "shutdown complete", nil)
	}
	_ = sysLogger.Sync()
}
