package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	classifier "fraudwatch/classifier"
	config "fraudwatch/config"
	helpers "fraudwatch/helpers"
	kafka "fraudwatch/kafka"
	models "fraudwatch/models"
	mongodb "fraudwatch/repositories/mongodb"
	redis "fraudwatch/repositories/redis"
	prediction "fraudwatch/services/prediction"
	txpsr "fraudwatch/services/processors"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

func main() {
	configPath := kingpin.Flag("config", "Path to the application config file").Short('c').Default("config.yml").String()
	kingpin.Parse()

	k, appKonf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	appKonf = config.LoadSecrets(appKonf)

	// Validate the config loaded
	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	logger, err := helpers.NewLogger(appKonf.Application+"-scorer", appKonf.Logger.Level)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The scorer has nothing to do without a model.
	model, err := classifier.Load(appKonf.Resources.ModelPath)
	if err != nil {
		logger.Fatal("cannot load model", zap.String("path", appKonf.Resources.ModelPath), zap.Error(err))
	}

	// Mongo Connection
	mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI, appKonf.Application)
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}
	defer func() {
		_ = mongodb.Disconnect(mongoClient)
	}()

	// Redis Connection
	var dlq txpsr.DeadLetterQueue
	if appKonf.Redis.Enabled {
		redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
		if err != nil {
			logger.Fatal("cannot create redis client", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		dlq = redis.NewDeadLetterQueue(redisClient, logger, appKonf.Redis.DLQPrefix)
	}

	scoresRepo := mongodb.NewScoresRepo(mongoClient, appKonf.Mongo.Database, appKonf.Mongo.ScoresCollection)
	scorer := prediction.NewService(logger, model, nil)
	txProcessor := txpsr.NewTxProcessor(logger, scorer, scoresRepo, dlq)

	metrics := kprom.NewMetrics("fraudwatch")
	conf := &models.ConsumerConfig{
		Brokers:        appKonf.Kafka.Brokers,
		Name:           appKonf.Kafka.ConsumerName,
		Topic:          appKonf.Kafka.Topic,
		RecordsPerPoll: appKonf.Kafka.RecordsPerPoll,
	}

	txConsumer, err := kafka.NewTxConsumer(conf, txProcessor, metrics, logger)
	if err != nil {
		logger.Fatal("cannot create transactions consumer", zap.Error(err))
	}

	logger.Info("scorer started", zap.String("topic", conf.Topic), zap.String("model", model.Name))
	if err = txConsumer.Poll(ctx); err != nil {
		logger.Fatal("cannot poll records from topic", zap.Error(err))
	}
}
