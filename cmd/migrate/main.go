// Command migrate applies the embedded schema migrations.
//
//	migrate [-dsn URL] up|down|version
//	migrate [-dsn URL] steps N
//	migrate [-dsn URL] force VERSION
//
// Without -dsn the connection comes from REGISTRAR_DB_DSN, then from the
// REGISTRAR_DB_* variables the server reads.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/registrar/internal/config"
	"github.com/JaimeStill/registrar/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "REGISTRAR_DB_DSN"

var errUsage = errors.New("usage: migrate [-dsn URL] up|down|version|steps N|force VERSION")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dsn := flag.String("dsn", os.Getenv(envDSN), "postgres:// connection URL")
	flag.Parse()

	if err := run(logger, *dsn, flag.Args()); err != nil {
		logger.Error("migrate failed", "error", err)
		if errors.Is(err, errUsage) {
			flag.PrintDefaults()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dsn string, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	if dsn == "" {
		resolved, err := resolveDSN()
		if err != nil {
			return fmt.Errorf("resolve connection: %w", err)
		}
		dsn = resolved
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer m.Close()

	switch cmd := args[0]; cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps", "force":
		if len(args) != 2 {
			return errUsage
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("%s: %w", cmd, convErr)
		}
		if cmd == "steps" {
			err = m.Steps(n)
		} else {
			err = m.Force(n)
		}
	case "version":
	default:
		return errUsage
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no change")
	} else if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	v, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("schema empty")
	case err != nil:
		return fmt.Errorf("version: %w", err)
	default:
		logger.Info("schema version", "version", v, "dirty", dirty)
	}
	return nil
}

// resolveDSN builds the connection URL from the REGISTRAR_DB_* variables,
// defaulting to a local registrar database.
func resolveDSN() (string, error) {
	cfg := database.Config{
		Name:            "registrar",
		User:            "registrar",
		Password:        "registrar",
		ApplicationName: "registrar-migrate",
	}
	if err := cfg.Finalize(config.DatabaseEnv); err != nil {
		return "", err
	}
	return cfg.URL(), nil
}
