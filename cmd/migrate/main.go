package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"taskboard/config"
	"taskboard/internal/repository"
	"taskboard/internal/services"
	"taskboard/pkg/clock"
	"taskboard/pkg/database"
	"taskboard/pkg/logger"

	"gorm.io/gorm"
)

const usage = `
Taskboard - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Create or update the tasks, users and events tables
  status      Show database connection status and row counts
  seed-dev    Seed sample users and tasks (recorded in the event log)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  go run cmd/migrate/main.go seed-dev
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(ctx, db)
	case "seed-dev":
		runSeedDevelopment(ctx, db, logger.New(cfg.LogMode))
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("Running migrations...")

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}

func showStatus(ctx context.Context, db *gorm.DB) {
	log.Println("Checking database status...")

	if err := database.Ping(ctx, db); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	for _, table := range []string{"tasks", "users", "events"} {
		exists, err := database.TableExists(db, table)
		if err != nil {
			log.Printf("Error checking table %s: %v", table, err)
			continue
		}
		if !exists {
			log.Printf("Table %-10s does not exist", table)
			continue
		}
		count, err := database.GetTableCount(db, table)
		if err != nil {
			log.Printf("Error counting table %s: %v", table, err)
			continue
		}
		log.Printf("Table %-10s exists (%d rows)", table, count)
	}

	if err := database.HealthCheck(ctx, db); err != nil {
		log.Printf("Health check warning: %v", err)
	} else {
		log.Println("Health check: PASSED")
	}
}

func runSeedDevelopment(ctx context.Context, db *gorm.DB, l *logger.Logger) {
	log.Println("Seeding database (development mode)...")

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	clk := clock.NewMonotonic()
	tx := repository.NewTransactor(db, clk.Now)
	users := services.NewUserService(services.NewUserPersistenceService(repository.NewUserRepository(db), tx, nil, clk.Now, l))
	tasks := services.NewTaskService(services.NewTaskPersistenceService(repository.NewTaskRepository(db), tx, nil, clk.Now, l))

	result, err := database.SeedDevelopment(ctx, users, tasks, nil)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seed summary:")
	log.Printf("   - Users: %d", len(result.Users))
	if result.SkippedTasks {
		log.Println("   - Tasks: skipped, table not empty")
	} else {
		log.Printf("   - Tasks: %d", len(result.Tasks))
	}
	log.Println("Development seeding completed")
}
