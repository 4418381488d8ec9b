package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/campusmarket/backend/internal/infrastructure/config"
	"github.com/campusmarket/backend/internal/infrastructure/logger"
	"github.com/campusmarket/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel      string
	migrationsDir string
	confirmDrop   bool
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Campus market database migration tool",
	Long: `Applies the embedded schema migrations to the configured database.

The database is selected through the same configuration as the server
(config.toml, .env and MARKET_ environment variables).`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	createCmd.Flags().StringVar(&migrationsDir, "dir", "", "Directory to write to (default: migrations/<driver>)")
	dropCmd.Flags().BoolVar(&confirmDrop, "confirm", false, "Confirm dropping every database object")

	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, gotoCmd, versionCmd, forceCmd, dropCmd, createCmd, listCmd)
}

// setup loads configuration and a console logger shared by all commands
func setup() (*config.Config, *zap.Logger, error) {
	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, log, nil
}

// withMigrator opens a migrator for the configured database and closes it after fn
func withMigrator(fn func(m *migration.Migrator, log *zap.Logger) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync(log) }()

	m, err := openMigrator(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	log.Info("Migration CLI started", zap.String("driver", cfg.Database.Driver))
	return fn(m, log)
}

// openMigrator connects to Postgres through lib/pq; SQLite files are opened by golang-migrate
func openMigrator(cfg *config.DatabaseConfig, log *zap.Logger) (*migration.Migrator, error) {
	if cfg.IsSQLite() {
		return migration.NewFromConfig(cfg, log)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Close on a postgres migrator also closes db
	m, err := migration.New(db, cfg.Driver, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
			return m.Up()
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
			return m.Down()
		})
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps <n>",
	Short: "Apply n migrations (negative rolls back)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
			return m.Steps(n)
		})
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate up or down to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
			return m.GoTo(uint(version))
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current migration version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator, log *zap.Logger) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if version == 0 {
				log.Info("No migrations applied")
				return nil
			}
			log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Set the migration version without running migrations",
	Long:  "Clears the dirty flag after a failed migration has been repaired by hand.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator, log *zap.Logger) error {
			log.Warn("Forcing migration version", zap.Int("version", version))
			return m.Force(version)
		})
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every database object",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDrop {
			return fmt.Errorf("refusing to drop without --confirm")
		}
		return withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
			return m.Drop()
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name> [description]",
	Short: "Create a new migration file pair",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		dir := migrationsDir
		if dir == "" {
			dir = filepath.Join("migrations", cfg.Database.Driver)
		}
		description := ""
		if len(args) > 1 {
			description = args[1]
		}

		mf, err := migration.CreateMigration(dir, args[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the migrations embedded for the configured driver",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}

		fsys, err := migration.Source(cfg.Database.Driver)
		if err != nil {
			return err
		}
		names, err := migration.ListMigrations(fsys)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No migrations found")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, "  -", name)
		}
		return nil
	},
}
