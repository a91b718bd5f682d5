package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/winshot/winshot/internal/api"
	"github.com/winshot/winshot/internal/logger"
	"github.com/winshot/winshot/internal/window"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the winshot HTTP server",
	Long: `Start the HTTP server exposing window enumeration and capture.

The server provides a REST API for listing windows, capturing windows or
the full screen, and a websocket stream of window-list changes.`,
	Example: `  # Start server on default port (8080)
  winshot serve

  # Start server on custom port
  winshot serve --port 9090

  # Start with debug logging
  winshot serve --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "server port (default is 8080)")
	viper.BindPFlag("server_port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port from flag if provided
	if viper.IsSet("server_port") {
		if port := viper.GetInt("server_port"); port > 0 {
			if err := configMgr.SetPort(port); err != nil {
				return err
			}
		}
	}

	cfg := configMgr.Get()
	log := logger.WithComponent("serve")
	log.Info().Str("path", configMgr.GetConfigPath()).Msg("configuration loaded")

	windowMgr, err := window.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize window manager: %w", err)
	}

	capturer, err := newCapturer()
	if err != nil {
		return err
	}

	server := api.NewServer(windowMgr, capturer, configMgr)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(cfg.ServerPort)
	}()

	log.Info().Int("port", cfg.ServerPort).Msg("winshot is running, press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-sigChan:
		log.Info().Msg("shutting down")
		return nil
	}
}
