package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riskwatch/internal/app"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		srv := &http.Server{
			Addr:              ":" + cfg.HTTPPort,
			Handler:           a.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on :%s", cfg.HTTPPort)
			log.Println("Endpoints:")
			log.Println("  POST /v1/auth/register, /v1/auth/login")
			log.Println("  GET/POST /v1/students")
			log.Println("  POST /v1/students/{id}/assessments")
			log.Println("  GET  /v1/students/{id}/history")
			log.Println("  POST/GET /v1/students/{id}/journal")
			log.Println("  POST /v1/risk/assess, /v1/screen, /v1/trend")
			log.Println("  GET  /v1/alerts/recent, /v1/admin/analytics, /v1/admin/audit")
			log.Println("  WS   /v1/ws/alerts")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		// Wait for interrupt
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case err := <-errCh:
			return err
		}
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		log.Println("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (overrides http.port)")
	_ = viper.BindPFlag("http.port", serveCmd.Flags().Lookup("port"))
}
