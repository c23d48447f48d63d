package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/MiLista/internal/app"
	"github.com/Rorical/MiLista/internal/config"
	"github.com/Rorical/MiLista/internal/logging"
	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
)

var (
	flagStore   string
	flagDevice  string
	flagProfile string
	flagVerbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "milista",
	Short: "Scan groceries into a priced shopping list",
	Long: `MiLista turns barcode scans into a shopping list priced at your store.
Point it at a scanner with --device (or scanner.device in the config), or type
codes by hand.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(models.ModeList)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "store to price the list at (paiz, walmart, maxidespensa, latorre)")
	rootCmd.PersistentFlags().StringVar(&flagDevice, "device", "", "scanner device path (tty, fifo or file)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "API profile to use for this run")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(priceCmd)
}

// setup loads .env, the config file and the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err = logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.LogFile(),
		Verbose: flagVerbose,
	})
	return err
}

// applyRunFlags layers the per-run flags over the loaded config. They are
// never saved.
func applyRunFlags() error {
	if flagProfile != "" {
		if err := cfg.UseProfile(flagProfile); err != nil {
			return err
		}
	}
	if flagStore != "" {
		store, ok := lookup.FindStore(flagStore)
		if !ok {
			return fmt.Errorf("unknown store %q", flagStore)
		}
		cfg.SetStore(store.ID)
	}
	if flagDevice != "" {
		cfg.Scanner.Device = flagDevice
	}
	return nil
}

func runTUI(mode models.Mode) error {
	if err := applyRunFlags(); err != nil {
		return err
	}

	application, err := app.NewApplication(cfg, app.Options{Mode: mode, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

func newLookupClient() *lookup.Client {
	return lookup.NewClient(cfg.GetBaseURL(),
		lookup.WithTimeout(cfg.LookupTimeout()),
		lookup.WithConcurrency(cfg.Lookup.Concurrency),
		lookup.WithLogger(logger.Named("lookup")),
	)
}
