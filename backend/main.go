package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medstock/m/internal/api"
	"medstock/m/internal/config"
	"medstock/m/internal/logging"
	"medstock/m/internal/seed"
	"medstock/m/internal/socket"
	"medstock/m/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings {
		logger.Warn("config", zap.String("warning", w))
	}

	now := time.Now()
	medicines := seed.Medicines(now)
	if cfg.CatalogCSV != "" {
		medicines, err = seed.LoadMedicinesFile(cfg.CatalogCSV, logger)
		if err != nil {
			logger.Fatal("unable to load catalog", zap.String("path", cfg.CatalogCSV), zap.Error(err))
		}
	}

	st, err := store.New(store.Config{
		Users:     seed.Users(),
		Medicines: medicines,
		Requests:  seed.RequestsFor(medicines, now),
		Password:  cfg.DemoPassword,
	})
	if err != nil {
		logger.Fatal("unable to build store", zap.Error(err))
	}
	logger.Info("inventory loaded",
		zap.Int("medicines", len(medicines)),
		zap.Int("alerts", len(st.Alerts())))

	hub := socket.NewHub(logger)
	handler := api.New(st, hub, logger, api.Settings{
		Secret:         cfg.Secret,
		TokenTTL:       cfg.TokenTTL,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	logger.Info("pharmacy inventory server starting", zap.String("addr", ":"+cfg.HTTPPort))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
