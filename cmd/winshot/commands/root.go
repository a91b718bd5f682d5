package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/winshot/winshot/internal/config"
	"github.com/winshot/winshot/internal/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "winshot",
		Short: "winshot - Window and screen capture for Windows",
		Long: `winshot captures pixels from individual windows or the whole virtual
screen using the Win32 GDI surface, including windows that are covered by
other windows or moved off-screen.

Features:
  • List visible top-level windows
  • Capture a single window by title or regex
  • Capture the full virtual screen across all monitors
  • Window-area or client-area capture, with optional crop
  • PNG, JPEG, BMP and PDF output
  • REST API with a live window-list event stream`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/winshot/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// loadConfig builds the config manager, applies flag overrides and sets up
// logging. Every subcommand starts here.
func loadConfig() (*config.Manager, error) {
	configMgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := configMgr.Get()
	level := cfg.LogLevel
	if viper.IsSet("log_level") {
		if l := viper.GetString("log_level"); l != "" {
			level = l
			if err := configMgr.SetLogLevel(l); err != nil {
				return nil, err
			}
		}
	}
	logger.Init(level, cfg.PrettyLog)

	return configMgr, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
