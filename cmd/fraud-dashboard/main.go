package main

import (
	// Go Internal Packages
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Local Packages
	config "fraudwatch/config"
	helpers "fraudwatch/helpers"
	redis "fraudwatch/repositories/redis"
	resources "fraudwatch/resources"
	server "fraudwatch/server"
	prediction "fraudwatch/services/prediction"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := kingpin.Flag("config", "Path to the application config file").Short('c').Default("config.yml").String()
	kingpin.Parse()

	k, appKonf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	appKonf = config.LoadSecrets(appKonf)

	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	logger, err := helpers.NewLogger(appKonf.Application, appKonf.Logger.Level)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := resources.NewLoader(appKonf.Resources.ModelPath, appKonf.Resources.DatasetPath, logger).Load(ctx)
	if appKonf.Resources.Strict && !res.Ready() {
		logger.Fatal("resources not loaded, refusing to serve", zap.Error(res.Err()))
	}

	// Failed predictions are parked in redis only when it is enabled.
	var failures prediction.FailureSink
	if appKonf.Redis.Enabled {
		redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
		if err != nil {
			logger.Fatal("cannot create redis client", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		failures = redis.NewDeadLetterQueue(redisClient, logger, appKonf.Redis.DLQPrefix)
	}

	srv, err := server.New(logger, res, failures)
	if err != nil {
		logger.Fatal("cannot create server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:        appKonf.HTTP.Addr,
		Handler:     srv.Router(),
		ReadTimeout: appKonf.HTTP.ReadTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("cannot shut down http server", zap.Error(err))
		}
	}()

	logger.Info("dashboard listening", zap.String("addr", appKonf.HTTP.Addr),
		zap.Bool("model_loaded", res.Model != nil), zap.Bool("dataset_loaded", res.Dataset != nil))
	if err = httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server stopped", zap.Error(err))
	}
	logger.Info("dashboard stopped")
}
