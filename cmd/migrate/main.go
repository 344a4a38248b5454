package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jbclements/t-test/adapters/db/postgres/migrations"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 || (os.Args[1] != "up" && os.Args[1] != "status") {
		log.Fatal("Usage: migrate up|status [database_url]")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 2 {
		databaseURL = os.Args[2]
	}
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrator := migrations.NewMigrator(db.DB)

	switch os.Args[1] {
	case "up":
		applied, err := migrator.Up(ctx)
		for _, version := range applied {
			log.Printf("Applied migration %s", version)
		}
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Printf("%d migrations applied", len(applied))

	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%s  %-8s %s\n", s.Version, state, s.Name)
		}
	}
}
