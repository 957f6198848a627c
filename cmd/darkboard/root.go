package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard"
)

var (
	verbose    bool
	dataFile   string
	configFile string
	readOnly   bool

	// cfg is the darkboard.yaml in effect, loaded before any command runs.
	cfg darkboard.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "darkboard",
	Short: "A board of sticky notes in your terminal",
	Long: `Darkboard keeps up to 256 sticky notes on a canvas.
Run it without a command to open the board. The subcommands read and edit
the notes file directly, which is handy for scripts.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := loadConfig()
		if err != nil {
			fatal("Failed to load config", err)
		}
		cfg = loaded

		level, _ := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		runBoard(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "Notes file or directory (default: data_file from darkboard.yaml, else ./notes.dat)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: nearest darkboard.yaml)")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Never write the notes file")
}
