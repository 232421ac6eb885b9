package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"agribot/internal/analytics"
	"agribot/internal/db"
	"agribot/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the AgriBot HTTP server",
	Long:  `Starts the chat API with REST and websocket endpoints, feedback capture, and usage analytics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		port := cfg.Port
		if servePort != 0 {
			port = servePort
		}

		dbPath := filepath.Join(cfg.DataDir, "agribot.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := analytics.NewStore(database)
		eng, err := newEngine(store, log)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: cfg.AllowAllCORS,
		}, eng, store, log)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		log.WithField("db", dbPath).Infof("agribot v%s starting on port %d", Version, port)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
