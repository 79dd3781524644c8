package main

import (
	"apartment-geo-enrich/internal/adapters/cache"
	"apartment-geo-enrich/internal/config"
	"apartment-geo-enrich/internal/platform/db"
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	driver := flag.String("driver", cfg.Cache.Driver, "cache backend to initialize: sqlite or postgres")
	flag.Parse()

	ctx := context.Background()
	switch *driver {
	case "sqlite":
		err = initSQLite(ctx, cfg.Cache.SQLitePath)
	case "postgres":
		err = initPostgres(ctx, cfg.Cache.DatabaseURL)
	default:
		log.Fatalf("cache driver %q has no schema (use sqlite or postgres)", *driver)
	}
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func initSQLite(ctx context.Context, path string) error {
	if path == "" {
		log.Fatal("cache.sqlite_path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	sqlDB, err := db.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	log.Printf("Initializing sqlite cache schema at %s...", path)
	return cache.InitSQLiteSchema(ctx, sqlDB)
}

func initPostgres(ctx context.Context, databaseURL string) error {
	if databaseURL == "" {
		log.Fatal("cache.database_url is required")
	}
	pool, err := db.OpenPostgres(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	log.Println("Initializing postgres cache schema...")
	return cache.InitPostgresSchema(ctx, pool)
}
