package main

import (
	"context"
	"flag"
	"log"

	"anoa.com/rhythmrank/internal/config"
	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/pkg/database"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	engine := migration.NewEngine(db)
	backend := engine.Backend()
	log.Printf("backend %s (enum types: %t, foreign keys: %t)", backend.Name, backend.EnumTypes, backend.ForeignKeys)

	ctx := context.Background()
	switch *direction {
	case "up":
		if err := engine.Up(ctx); err != nil {
			log.Fatalf("migrate up failed: %v", err)
		}
		log.Println("schema created")
	case "down":
		if err := engine.Down(ctx); err != nil {
			log.Fatalf("migrate down failed: %v", err)
		}
		log.Println("schema dropped")
	default:
		log.Fatalf("unknown direction %q (want up or down)", *direction)
	}
}
