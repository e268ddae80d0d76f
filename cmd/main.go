package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-supply-chain/config"
	"github.com/oksasatya/go-ddd-supply-chain/internal/application"
	"github.com/oksasatya/go-ddd-supply-chain/internal/container"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/broker"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/snapshot"
	"github.com/oksasatya/go-ddd-supply-chain/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-supply-chain/internal/router"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	svc := application.NewService(memory.NewUserRepository(), memory.NewProductRepository(), memory.NewEventLog(), nil, logger)
	clients := snapshot.Clients{}

	// Redis backs rate limiting and, optionally, snapshots
	var rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unavailable; rate limiting disabled")
		_ = rdb.Close()
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
		clients.Redis = rdb
	}

	// Postgres only when it holds snapshots
	if cfg.SnapshotBackend == config.SnapshotPostgres {
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
		clients.Postgres = pool
	}

	if cfg.SnapshotBackend == config.SnapshotGCS {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
		clients.GCS = gcsClient
	}

	store, err := snapshot.Open(cfg, clients)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}
	if store != nil {
		if _, err := svc.RestoreSnapshot(ctx, store); err != nil {
			log.Fatalf("restore snapshot: %v", err)
		}
		go snapshot.RunPeriodic(ctx, svc, store, cfg.SnapshotInterval, logger)
	}

	if cfg.EventsPublishEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer pub.Close()
		container.SetRabbitPub(pub)
		svc.Publisher = broker.NewCustodyPublisher(pub, svc)
		logger.WithField("queue", cfg.RabbitMQEventsQueue).Info("custody events publishing enabled")
	}

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		indexer := search.NewProductIndexer(es, cfg.ESProductsIndex)
		if err := indexer.EnsureIndex(ctx); err != nil {
			log.Fatalf("ensure products index: %v", err)
		}
		container.SetES(es)
		svc.Indexer = indexer
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)

	// Provide singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetService(svc)
	container.SetSnapshotStore(store)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(corsCfg))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	stop()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	if store != nil {
		if err := svc.SaveSnapshot(ctxShutdown, store); err != nil {
			logger.WithError(err).Error("final snapshot failed")
		}
	}
	logger.Info("server exited properly")
}
