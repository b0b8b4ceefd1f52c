package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"invdash/internal/api"
	"invdash/internal/config"
	"invdash/internal/dashboard"
	"invdash/internal/logging"
	"invdash/internal/progress"
	"invdash/internal/seed"
	"invdash/internal/service"
	"invdash/internal/telemetry"
	"invdash/internal/ui"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "invdash",
		Short:         "invdash - a terminal inventory dashboard",
		Long:          `invdash shows recent customers, orders and products from a local SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd.Context(), opts, runTUI)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $INVDASH_CONFIG or ~/.config/invdash/config.toml)")

	root.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// withEnv opens the environment, runs fn and closes it again.
func withEnv(ctx context.Context, opts *rootOptions, fn func(context.Context, *env) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := openEnv(ctx, opts.configPath)
	if err != nil {
		return err
	}
	runErr := fn(ctx, e)
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(runErr, e.Close(closeCtx))
}

func runTUI(ctx context.Context, e *env) error {
	events := make(chan progress.Event, 64)
	emitter := &progress.ChanEmitter{Ch: events}
	set := service.NewSet(e.db, telemetry.Tracer(nil))

	app := ui.NewAppModel(ui.Options{
		Customers:  set.Customers,
		Orders:     set.Orders,
		Products:   set.Products,
		Status:     emitter,
		ErrorLog:   dashboard.ErrorLoggers{logging.ErrorLog{Logger: e.log}, emitter},
		Events:     events,
		Logger:     e.log,
		PageSize:   e.cfg.UI.PageSize,
		DateFormat: e.cfg.UI.DateFormat,
	})
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Opening the store applies pending migrations.
			return withEnv(cmd.Context(), opts, func(_ context.Context, e *env) error {
				fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", e.cfg.Database.Path)
				return nil
			})
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixtures into an empty database",
		Long:  "Load customers, products and orders from a YAML fixture file, or the built-in demo set when --file is omitted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixture, err := readFixture(file)
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), opts, func(ctx context.Context, e *env) error {
				counts, err := seed.Load(ctx, e.db, fixture, time.Now())
				if errors.Is(err, seed.ErrNotEmpty) {
					return fmt.Errorf("%w: seed only runs against a fresh database", err)
				}
				if err != nil {
					return err
				}
				e.log.Info("seeded database",
					zap.Int("customers", counts.Customers),
					zap.Int("products", counts.Products),
					zap.Int("orders", counts.Orders),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d customers, %d products, %d orders\n",
					counts.Customers, counts.Products, counts.Orders)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture YAML file (default: built-in demo data)")
	return cmd
}

func readFixture(path string) (seed.Fixture, error) {
	if path == "" {
		return seed.Demo()
	}
	f, err := os.Open(path)
	if err != nil {
		return seed.Fixture{}, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return seed.Decode(f)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and lists as JSON over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withEnv(ctx, opts, func(ctx context.Context, e *env) error {
				if addr == "" {
					addr = e.cfg.HTTP.Addr
				}
				set := service.NewSet(e.db, telemetry.Tracer(nil))
				h := api.NewHandler(set.Customers, set.Orders, set.Products, e.db, e.log)
				fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", addr)
				return api.Serve(ctx, addr, api.Routes(h), e.log)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from http.addr)")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(opts)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "config:                 %s\n", configPath(opts))
			fmt.Fprintf(w, "database.path:          %s\n", cfg.Database.Path)
			fmt.Fprintf(w, "log.path:               %s\n", cfg.Log.Path)
			fmt.Fprintf(w, "log.level:              %s\n", cfg.Log.Level)
			fmt.Fprintf(w, "ui.page_size:           %d\n", cfg.UI.PageSize)
			fmt.Fprintf(w, "ui.date_format:         %s\n", cfg.UI.DateFormat)
			fmt.Fprintf(w, "http.addr:              %s\n", cfg.HTTP.Addr)
			fmt.Fprintf(w, "telemetry.endpoint:     %s\n", cfg.Telemetry.Endpoint)
			fmt.Fprintf(w, "telemetry.service_name: %s\n", cfg.Telemetry.ServiceName)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

// configPath resolves the file Load reads: --config, then INVDASH_CONFIG, then the default.
func configPath(opts *rootOptions) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	if p := os.Getenv(config.ConfigEnv); p != "" {
		return p
	}
	return config.DefaultPath()
}
