package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/config"
	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/contacts"
	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/logger"
	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/store"
)

var (
	// global flags
	cfgFile     string
	backendName string
	logLevel    string
)

// app is the wiring shared by every subcommand.  It is built in
// PersistentPreRunE and torn down in PersistentPostRunE.
var app struct {
	cfg      *config.Config
	log      *slog.Logger
	medium   store.Store
	contacts *contacts.Store
}

// rootCmd is the base command for the CLI.  It delegates to
// subcommands defined in contacts.go and tui.go.  See init
// functions in those files for flag definitions.
var rootCmd = &cobra.Command{
	Use:           "contacts",
	Short:         "Manage a local contact list",
	Long:          "Add, list, search and remove contacts stored on a file, SQLite, Redis or in-memory backend.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd, cmd == tuiCmd || (cmd == cmd.Root() && onTerminal(cmd)))
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if onTerminal(cmd) {
			return runTUI(cmd)
		}
		return printContacts(cmd, app.contacts.List(), false)
	},
}

// onTerminal reports whether the command writes to a terminal.
func onTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// setup loads configuration, builds the logger, opens the storage
// backend and loads the contact list.  Interactive commands log only
// to an explicit log file so output does not corrupt the screen.
func setup(cmd *cobra.Command, interactive bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if backendName != "" {
		cfg.Storage.Backend = backendName
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var fallback io.Writer = cmd.ErrOrStderr()
	if interactive {
		fallback = io.Discard
	}
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	}, fallback)

	medium, err := store.Open(cmd.Context(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Storage.Backend, err)
	}
	tag, _ := cfg.Language() // checked by Validate

	app.cfg = cfg
	app.log = log
	app.medium = medium
	app.contacts = contacts.New(cmd.Context(), medium,
		contacts.WithKey(cfg.Storage.Key),
		contacts.WithLanguage(tag),
		contacts.WithLogger(log),
	)
	log.Debug("backend ready", "backend", cfg.Storage.Backend, "contacts", app.contacts.Len())
	return nil
}

func teardown() error {
	if app.medium == nil {
		return nil
	}
	err := app.medium.Close()
	app.medium = nil
	app.contacts = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile,
		"config", "c", "", "Path to a YAML or TOML config file")

	rootCmd.PersistentFlags().StringVarP(&backendName,
		"backend", "b", "", "Storage backend: memory, file, sqlite or redis (overrides config)")

	rootCmd.PersistentFlags().StringVar(&logLevel,
		"log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// Execute runs the root command.  It should be invoked from main.
// SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_ = teardown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
