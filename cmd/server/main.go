package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brandon/mail-dialog/internal/cache"
	"github.com/brandon/mail-dialog/internal/config"
	"github.com/brandon/mail-dialog/internal/dialog"
	"github.com/brandon/mail-dialog/internal/email"
	"github.com/brandon/mail-dialog/internal/mcp"
	"github.com/brandon/mail-dialog/internal/suggest"
	"github.com/brandon/mail-dialog/internal/tools"
	"github.com/sirupsen/logrus"
)

var (
	version     = "dev"
	showVersion = flag.Bool("version", false, "Show version information")
)

// cacheSource is the suggestion source backed by the contact cache
const cacheSource = "cache"

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mail-dialog-server version %s\n", version)
		os.Exit(0)
	}
	// Stdout carries the protocol, so logs go to stderr
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.WithFields(logrus.Fields{
		"accounts": cfg.AccountNames(),
		"presets":  len(cfg.Presets),
	}).Info("Starting mail dialog server")

	contactCache, err := cache.NewCache(cfg.CachePath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize cache")
	}
	defer contactCache.Close()

	store := cache.NewStore(contactCache, logger)

	for i := range cfg.Accounts {
		if _, err := store.UpsertAccount(&cfg.Accounts[i]); err != nil {
			logger.WithError(err).WithField("account", cfg.Accounts[i].Name).Warn("Failed to cache account")
		}
	}

	emailManager := email.NewManager(cfg, store, logger)
	defer emailManager.Close()

	sources := suggest.NewRegistry(cacheSource)
	sources.Register(cacheSource, cache.NewContactSource(store))

	registry := tools.NewRegistry(&tools.Deps{
		Config:  cfg,
		Dialogs: dialog.NewManager(logger),
		Mailer:  emailManager,
		Emails:  store,
		Sources: sources,
		Logger:  logger,
	})

	server := mcp.NewServer(registry, version, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	doneChan := make(chan struct{})
	go func() {
		if err := server.Run(ctx); err != nil {
			errChan <- err
			return
		}
		close(doneChan)
	}()

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	case err := <-errChan:
		logger.WithError(err).Error("Server error")
		cancel()
	case <-doneChan:
		logger.Info("Client closed the connection")
	}

	logger.Info("Shutting down mail dialog server")
}
