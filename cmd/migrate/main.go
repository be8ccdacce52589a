package main

import (
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/internal/infrastructure/database"
	"github.com/moa-team/moa-backend/pkg/config"
)

// Applies or rolls back SQL migrations from migrations/.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	direction := migrate.Up
	if len(os.Args) > 1 && os.Args[1] == "down" {
		direction = migrate.Down
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database object: %v", err)
	}

	migrations := &migrate.FileMigrationSource{Dir: "migrations"}
	n, err := migrate.Exec(sqlDB, "postgres", migrations, direction)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("✅ Applied %d migrations!", n)
}
