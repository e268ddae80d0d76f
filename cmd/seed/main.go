package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-supply-chain/config"
	"github.com/oksasatya/go-ddd-supply-chain/internal/application"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/snapshot"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
)

type demoUser struct {
	principal entity.Principal
	name      string
	role      entity.UserRole
	email     string
}

var demoUsers = []demoUser{
	{"manufacturer-test-001", "Acme Manufacturing", entity.RoleManufacturer, "factory@example.com"},
	{"distributor-test-002", "Northwind Distribution", entity.RoleDistributor, "hub@example.com"},
	{"retailer-test-003", "Corner Shop", entity.RoleRetailer, "shop@example.com"},
	{"customer-test-004", "Jane Customer", entity.RoleCustomer, "jane@example.com"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	if cfg.SnapshotBackend == config.SnapshotNone || cfg.SnapshotBackend == "" {
		log.Fatal("SNAPSHOT_BACKEND=none; nothing to seed into")
	}

	clients := snapshot.Clients{}
	switch cfg.SnapshotBackend {
	case config.SnapshotRedis:
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		clients.Redis = rdb
	case config.SnapshotPostgres:
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		clients.Postgres = pool
	case config.SnapshotGCS:
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		clients.GCS = gcsClient
	}

	store, err := snapshot.Open(cfg, clients)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}

	svc := application.NewService(memory.NewUserRepository(), memory.NewProductRepository(), memory.NewEventLog(), nil, logger)
	if _, err := svc.RestoreSnapshot(ctx, store); err != nil {
		log.Fatalf("restore snapshot: %v", err)
	}

	for _, u := range demoUsers {
		_, err := svc.RegisterUser(application.WithCaller(ctx, u.principal), application.RegisterUserInput{
			Name:  u.name,
			Role:  u.role,
			Email: u.email,
		})
		switch {
		case err == nil:
			fmt.Printf("seeded user: principal=%s role=%s\n", u.principal, u.role)
		case errors.Is(err, application.ErrAlreadyRegistered):
			fmt.Printf("user exists: principal=%s\n", u.principal)
		default:
			log.Fatalf("failed to seed %s: %v", u.principal, err)
		}
	}

	// one demo product, only on a fresh directory
	maker := demoUsers[0].principal
	if len(svc.ListOwnedProducts(maker)) == 0 {
		p, err := svc.CreateProduct(application.WithCaller(ctx, maker), application.CreateProductInput{
			Name:        "Demo Widget",
			Description: "Seeded product",
			Price:       19.99,
			Quantity:    100,
			Category:    "demo",
		})
		if err != nil {
			log.Fatalf("failed to seed product: %v", err)
		}
		fmt.Printf("seeded product: id=%s owner=%s\n", p.ID, p.CurrentOwner)
	}

	if err := svc.SaveSnapshot(ctx, store); err != nil {
		log.Fatalf("save snapshot: %v", err)
	}

	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)
	for _, u := range demoUsers {
		tok, exp, err := jwt.GenerateAccessToken(string(u.principal))
		if err != nil {
			log.Fatalf("token for %s: %v", u.principal, err)
		}
		fmt.Printf("%s (expires %s): %s\n", u.principal, exp.Format(time.RFC3339), tok)
	}
}
