// Package main aplica las migraciones de migrations/ sobre la base configurada.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	pg "virtual-pet/internal/adapters/storage/postgres"
	"virtual-pet/internal/config"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", os.Getenv("VPET_CONFIG"), "path to YAML config (optional)")
	source := flag.String("source", "file://migrations", "migrations source URL")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("database.dsn is empty (set VPET_DATABASE_DSN or DB_DSN)")
	}

	res, err := pg.Migrate(cfg.Database.DSN, *source, pg.Direction(*direction), *steps)
	if err != nil {
		log.Fatal(err)
	}

	elapsed := time.Since(start)
	if !res.Changed {
		fmt.Fprintf(os.Stdout, "no changes (version=%d dirty=%v) [%s]\n", res.Version, res.Dirty, elapsed)
		return
	}
	fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n", *direction, res.Version, res.Dirty, elapsed)
}
