package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"scheduleboard/server/config"
	"scheduleboard/server/internal/api"
	"scheduleboard/server/internal/auth"
	"scheduleboard/server/internal/dataset"
	"scheduleboard/server/internal/metrics"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	logger.SetLevel(cfg.LogLevel())
	gin.SetMode(cfg.Server.GinMode)

	// The dataset is read once; every request reuses this store.
	logger.Infof("Loading schedule from %s (sheet %s)", cfg.Data.File, cfg.Data.Sheet)
	store, err := dataset.Load(cfg.Data.File, cfg.Data.Sheet, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load schedule dataset")
	}

	users, err := config.LoadCredentials(cfg.Auth.CredentialsFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load credentials")
	}
	authenticator := auth.NewAuthenticator(users)
	if authenticator.Len() == 0 {
		logger.Warn("No users configured, nobody can log in")
	}

	collector := metrics.New(store.Len)
	handler := api.NewHandler(store, authenticator, auth.NewSessionStore(cfg.Auth.SessionTTL), collector, api.Options{
		PublicCategory: cfg.Data.PublicCategory,
		ExportFilename: cfg.Data.ExportFilename,
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
	}, logger)

	router := api.NewRouter(handler, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"records": store.Len(),
		"users":   authenticator.Len(),
	}).Info("Starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
