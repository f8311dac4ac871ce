package main

import (
	// Go Internal Packages
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "fraudwatch/config"
	helpers "fraudwatch/helpers"
	mongodb "fraudwatch/repositories/mongodb"
	migration "fraudwatch/services/migration"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

var (
	app        = kingpin.New("fraud-migrate", "Copies the transactions CSV into MongoDB and back.")
	configPath = app.Flag("config", "Path to the application config file").Short('c').Default("config.yml").String()

	importCmd = app.Command("import", "Insert every row of a CSV file as a document.")
	importCSV = importCmd.Flag("csv", "CSV file to import (defaults to migrate.csv_path)").String()

	exportCmd = app.Command("export", "Write every document of the collection to a CSV file.")
	exportOut = exportCmd.Flag("out", "CSV file to write (defaults to migrate.output_path)").String()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

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

	logger, err := helpers.NewLogger(appKonf.Application+"-migrate", appKonf.Logger.Level)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mongo Connection
	mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI, appKonf.Application)
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}

	repo := mongodb.NewTransactionsRepo(mongoClient, appKonf.Mongo.Database, appKonf.Mongo.Collection)
	logger = logger.With(zap.String("database", appKonf.Mongo.Database), zap.String("collection", appKonf.Mongo.Collection))
	runErr := run(ctx, cmd, appKonf.Migrate, repo, logger)

	if err = mongodb.Disconnect(mongoClient); err != nil {
		logger.Warn("cannot disconnect mongo client", zap.Error(err))
	}
	if runErr != nil {
		logger.Error("migration failed", zap.String("command", cmd), zap.Error(runErr))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, conf config.Migrate, repo *mongodb.TransactionsRepo, logger *zap.Logger) error {
	switch cmd {
	case importCmd.FullCommand():
		path := firstNonEmpty(*importCSV, conf.CSVPath)
		inserted, err := migration.NewImporter(logger, repo).Import(ctx, path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		logger.Info("import finished", zap.Int("inserted", inserted))

	case exportCmd.FullCommand():
		path := firstNonEmpty(*exportOut, conf.OutputPath)
		written, err := migration.NewExporter(logger, repo).Export(ctx, path)
		if err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
		logger.Info("export finished", zap.Int("written", written), zap.String("path", path))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
