package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gradebook/internal/config"
	"gradebook/internal/console"
	"gradebook/internal/logging"
	"gradebook/internal/store"
	"gradebook/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	backend    string
	verbose    bool

	// Resolved in PersistentPreRunE
	cfg       *config.Config
	sessionID string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gradebook",
	Short: "Track student grades from the terminal",
	Long: `gradebook keeps a list of student grades for the length of one session.

Run without arguments to start the numbered menu on standard input/output.
Records are held in memory only and are gone when the program exits.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runConsole,
}

// tuiCmd runs the full-screen front end
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the grade menu as a full-screen terminal UI",
	RunE:  runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gradebook version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.Name, cfg.Version)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Store backend: memory or sqlite (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if backend != "" {
		loaded.Store.Backend = backend
	}
	if verbose {
		loaded.Logging.DebugMode = true
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	sessionID = uuid.NewString()
	if err := logging.Initialize(loaded.Logging, sessionID); err != nil {
		return err
	}
	logging.Boot("config %s loaded (backend=%s)", configPath, loaded.Store.Backend)

	cfg = loaded
	return nil
}

// signalContext cancels on SIGINT/SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// openStore builds the single store the session owns.
func openStore() (store.Store, error) {
	st, err := store.New(cfg.Store.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	logging.Boot("store backend %s ready", cfg.Store.Backend)
	return st, nil
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	err = console.NewSession(st, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
	if errors.Is(err, context.Canceled) {
		logging.Session("interrupted")
		return nil
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	err = tui.Run(ctx, st, cfg.UI.Theme, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		logging.Session("interrupted")
		return nil
	}
	return err
}
