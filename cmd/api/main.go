package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rc-building-model/internal/api"
	"rc-building-model/internal/config"
	"rc-building-model/internal/logging"
	"rc-building-model/internal/version"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	svc := config.LoadService()

	log, err := logging.New(svc.API.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	modelCfg, err := svc.LoadModel()
	if err != nil {
		log.Fatal("failed to load model config", zap.String("path", svc.ModelConfigPath), zap.Error(err))
	}

	if svc.API.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(api.Options{
		Model:          *modelCfg,
		AllowedOrigins: svc.API.AllowedOrigins,
		ResultTTL:      svc.ResultCacheTTL,
		Logger:         log,
	})
	defer server.Close()

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		server.Router.Static("/assets", staticDir+"/assets")
		server.Router.StaticFile("/", staticDir+"/index.html")
		log.Info("serving static files", zap.String("dir", staticDir))
	}

	addr := fmt.Sprintf(":%s", svc.API.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting API server",
			zap.String("addr", addr),
			zap.String("version", version.String()),
			zap.String("config", svc.ModelConfigPath),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info("received termination signal, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("shutdown complete")
}
