package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/video-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/video-summarizer/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying migrations")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database using GORM
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Printf("✅ Database connected successfully (%s)", cfg.Database.Driver)

	dir := migrate.Up
	if *down {
		dir = migrate.Down
		log.Println("⏪ Rolling back migrations...")
	} else {
		log.Println("🔄 Applying migrations...")
	}

	n, err := database.Migrate(db, dir)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("✅ Successfully applied %d migration(s)!\n", n)
}
