package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pylens/internal/analyzer"
	"pylens/internal/api"
)

var (
	servePort     string
	serveHost     string
	serveAuthFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the pylens HTTP API server. The server exposes single-file and
repository analysis over REST endpoints.

When --auth-hash-file points at a file containing a bcrypt token hash
(written by "pylens token generate"), every endpoint except /health
requires a matching bearer token.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&serveAuthFile, "auth-hash-file", "", "File containing a bcrypt token hash; enables bearer auth")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := loggerFromConfig(cfg)

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != "" {
		port = servePort
	}
	addr := fmt.Sprintf("%s:%s", host, port)

	var opts []api.Option
	if serveAuthFile != "" {
		data, err := os.ReadFile(serveAuthFile)
		if err != nil {
			return fmt.Errorf("failed to read auth hash file: %w", err)
		}
		opts = append(opts, api.WithAuthHash(strings.TrimSpace(string(data))))
	}

	server := api.NewServer(addr, analyzer.New(), logger, opts...)

	// Setup graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("pylens HTTP API server listening on http://%s\n", addr)
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	}

	return nil
}
