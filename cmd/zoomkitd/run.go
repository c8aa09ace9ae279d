package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/frudas24/zoomkit/internal/app"
	"github.com/frudas24/zoomkit/internal/config"
	"github.com/frudas24/zoomkit/internal/logx"
	"github.com/frudas24/zoomkit/internal/rtc"
	"github.com/frudas24/zoomkit/internal/session"
	"github.com/frudas24/zoomkit/internal/store"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logx.New(cfg.LogLevel, debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	logStartup(log, cfg)

	profiles, err := config.LoadProfiles(cfg.ProfilePath)
	if err != nil {
		return err
	}
	log.Info("profiles loaded", zap.Strings("names", profiles.Names()))

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	api, err := rtc.NewAPI()
	if err != nil {
		return err
	}

	sess := session.New(cfg.UIPassword)
	appInstance, err := app.New(cfg, sess, profiles, st, api, log)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return appInstance.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// logStartup reports startup checks and connection info.
func logStartup(log *zap.Logger, cfg config.Config) {
	log.Info("zoomkit starting", zap.Int("fps", cfg.FPS), zap.Bool("mjpeg", cfg.MJPEGEnabled))
	logEnvStatus(log, cfg)
	logListenStatus(log, cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file and the referenced files were found.
func logEnvStatus(log *zap.Logger, cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	log.Info("env check", zap.String("path", envPath), zap.Bool("found", fileExists(envPath)))
	log.Info("profiles check", zap.String("path", cfg.ProfilePath), zap.Bool("found", fileExists(cfg.ProfilePath)))
	if cfg.ImagePath != "" {
		log.Info("image check", zap.String("path", cfg.ImagePath), zap.Bool("found", fileExists(cfg.ImagePath)))
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(log *zap.Logger, addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		log.Info("listen addr", zap.String("addr", addr))
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Info("listen addr", zap.String("addr", addr), zap.String("url", "http://"+net.JoinHostPort(host, port)))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
