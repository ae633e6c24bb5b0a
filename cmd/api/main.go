// @title           Task Manager API
// @version         1.0
// @description     Multi-user task manager: categories, tags, tasks and subtasks behind token auth.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
// @description                 "Token <key>" as returned by /register/ or /login/.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmanager/docs"
	"taskmanager/internal/app"
	"taskmanager/internal/config"
	"taskmanager/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	log.WithFields(logrus.Fields{
		"env":     cfg.App.Env,
		"version": cfg.App.Version,
		"driver":  cfg.DB.Driver,
	}).Info("config loaded, connecting to storage and Redis")

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	docs.SwaggerInfo.BasePath = cfg.HTTP.BasePath
	docs.SwaggerInfo.Version = cfg.App.Version

	application, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("app init")
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		log.WithError(err).Error("HTTP server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP shutdown")
	}
	if err := application.Close(ctx); err != nil {
		log.WithError(err).Error("close app")
	}
	log.Info("stopped")
}
