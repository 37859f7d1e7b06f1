package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/tableside/api/internal/logger"
	"go.uber.org/zap"
)

func main() {
	dir := flag.String("path", "migrations", "Directory holding the SQL migrations")
	steps := flag.Int("steps", 0, "Number of steps for down (0 = all)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [flags] up|down|version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := logger.New("info", os.Getenv("ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	m, err := migrate.New("file://"+*dir, dbURL)
	if err != nil {
		log.Fatal("create migrate instance", zap.Error(err))
	}
	defer m.Close() //nolint:errcheck

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info("no migrations applied")
			return
		}
		if verr != nil {
			log.Fatal("read version", zap.Error(verr))
		}
		log.Info("current version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		log.Fatal("unknown command", zap.String("command", cmd))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("migration failed", zap.Error(err))
	}
	version, dirty, _ := m.Version()
	log.Info("migrations applied", zap.String("command", flag.Arg(0)), zap.Uint("version", version), zap.Bool("dirty", dirty))
}
