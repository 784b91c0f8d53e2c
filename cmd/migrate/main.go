package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"testreport/internal/config"
)

const usage = "usage: migrate <up|down|steps N|force N|version>"

// migrationsDir can be overridden for deployments that bake migrations
// into a different location than the repo layout.
func migrationsDir() string {
	if dir := os.Getenv("TRA_MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "db/migrations"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: loading config: %v", err)
	}

	m, err := migrate.New("file://"+migrationsDir(), cfg.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: opening source: %v", err)
	}
	defer m.Close()

	if err := run(m, os.Args[1:]); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("up: %w", err)
		}
		log.Println("migrate: schema is up to date")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("down: %w", err)
		}
		log.Println("migrate: schema reverted")

	case "steps":
		n, err := intArg(args, "steps")
		if err != nil {
			return err
		}
		if err := m.Steps(n); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("steps %d: %w", n, err)
		}
		log.Printf("migrate: applied %d step(s)", n)

	case "force":
		// Recovery path for a dirty schema_migrations row after a failed
		// migration.
		n, err := intArg(args, "force")
		if err != nil {
			return err
		}
		if err := m.Force(n); err != nil {
			return fmt.Errorf("force %d: %w", n, err)
		}
		log.Printf("migrate: forced version to %d", n)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

func intArg(args []string, cmd string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number argument", cmd)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", cmd, args[1])
	}
	return n, nil
}
