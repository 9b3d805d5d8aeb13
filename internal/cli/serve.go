package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brownie44l1/agricare-api/internal/config"
	"github.com/Brownie44l1/agricare-api/internal/handlers"
	"github.com/Brownie44l1/agricare-api/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	return cmd
}

func serve(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	rt, err := loadRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	deps := handlers.Deps{
		Labels:    rt.labels,
		Advisor:   rt.advisor,
		Renderer:  report.NewRenderer(report.Options{Compress: true}),
		ImageSize: cfg.ImageSize,
	}
	// Assigned only when loaded so the interface stays nil otherwise.
	if rt.classifier != nil {
		deps.Predictor = rt.classifier
	}

	router := handlers.NewRouter(handlers.NewHandler(deps), handlers.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Classes: %d, model loaded: %t, text generation: %t", rt.labels.Len(), rt.classifier != nil, rt.advisor.Configured())
	log.Println("Endpoints:")
	log.Println("  GET  /health        - Health check")
	log.Println("  GET  /ready         - Dependency status")
	log.Println("  GET  /labels        - Class table")
	log.Println("  POST /analyze_image - Classify a leaf image and draft a report")
	log.Println("  POST /generate_pdf  - Render a report as PDF")

	return waitForShutdown(server, errCh)
}

func waitForShutdown(server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-stop:
	}

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
