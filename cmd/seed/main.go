package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/database/migration"
	dbpostgres "careerpath/internal/database/postgres"
	"careerpath/internal/database/seeder"
	"careerpath/internal/infrastructure/persistence/postgres"
	"careerpath/internal/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	seed := flag.Bool("seed", true, "insert reference data after migrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()
	lg = lg.With("component", "seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, dbCfg)
	if err != nil {
		lg.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := (migration.Runner{Log: lg}).Run(ctx, db.SQLDB()); err != nil {
		lg.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if !*seed {
		return
	}

	tables := postgres.NewTables(db, lg)
	if err := tables.CheckSchema(ctx); err != nil {
		lg.Error("schema check failed", "error", err)
		os.Exit(1)
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Log: lg}).Run(ctx, tables); err != nil {
		lg.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	lg.Info("database ready")
}
