package config

import (
	// Go Internal Packages
	"time"

	// Local Packages
	errors "fraudwatch/errors"
)

var DefaultConfig = []byte(`
application: "fraudwatch"

logger:
  level: "debug"

is_prod_mode: false

http:
  addr: ":8501"
  read_timeout: 10s

resources:
  model_path: "model/fraud_pipeline.yml"
  dataset_path: "data/clean_data.csv"
  strict: false

mongo:
  uri: "mongodb://localhost:27017"
  database: "AIML"
  collection: "fraud_detection"
  scores_collection: "fraud_scores"

redis:
  enabled: false
  uri: "localhost:6379"
  password: ""
  dlq_prefix: "tx"

kafka:
  brokers:
    - "localhost:9092"
  topic: "transactions"
  records_per_poll: 500
  consumer_name: "fraud-scorer"

migrate:
  csv_path: "data/fraud_detection_dataset.csv"
  output_path: "data/raw_data.csv"
`)

type Config struct {
	Application string    `koanf:"application"`
	Logger      Logger    `koanf:"logger"`
	IsProdMode  bool      `koanf:"is_prod_mode"`
	HTTP        HTTP      `koanf:"http"`
	Resources   Resources `koanf:"resources"`
	Mongo       Mongo     `koanf:"mongo"`
	Redis       Redis     `koanf:"redis"`
	Kafka       Kafka     `koanf:"kafka"`
	Migrate     Migrate   `koanf:"migrate"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type HTTP struct {
	Addr        string        `koanf:"addr"`
	ReadTimeout time.Duration `koanf:"read_timeout"`
}

type Resources struct {
	ModelPath   string `koanf:"model_path"`
	DatasetPath string `koanf:"dataset_path"`
	// Strict refuses to serve unless both the model and the dataset loaded.
	Strict bool `koanf:"strict"`
}

type Mongo struct {
	URI              string `koanf:"uri"`
	Database         string `koanf:"database"`
	Collection       string `koanf:"collection"`
	ScoresCollection string `koanf:"scores_collection"`
}

type Redis struct {
	Enabled   bool   `koanf:"enabled"`
	URI       string `koanf:"uri"`
	Password  string `koanf:"password"`
	DLQPrefix string `koanf:"dlq_prefix"`
}

type Kafka struct {
	Brokers        []string `koanf:"brokers"`
	Topic          string   `koanf:"topic"`
	RecordsPerPoll int      `koanf:"records_per_poll"`
	ConsumerName   string   `koanf:"consumer_name"`
}

type Migrate struct {
	CSVPath    string `koanf:"csv_path"`
	OutputPath string `koanf:"output_path"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.HTTP.Addr == "" {
		ve.Add("http.addr", "cannot be empty")
	}
	if c.Resources.ModelPath == "" {
		ve.Add("resources.model_path", "cannot be empty")
	}
	if c.Resources.DatasetPath == "" {
		ve.Add("resources.dataset_path", "cannot be empty")
	}
	if c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Mongo.Database == "" {
		ve.Add("mongo.database", "cannot be empty")
	}
	if c.Mongo.Collection == "" {
		ve.Add("mongo.collection", "cannot be empty")
	}
	if c.Redis.Enabled && c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty when redis is enabled")
	}
	if len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Kafka.RecordsPerPoll <= 0 {
		ve.Add("kafka.records_per_poll", "must be positive")
	}

	return ve.Err()
}
