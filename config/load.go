package config

import (
	// Go Internal Packages
	"fmt"
	"os"
	"strings"

	// External Packages
	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// Load loads the default configuration and overrides it with the config file
// at path. A missing file is not an error; the defaults are used instead.
func Load(path string) (*koanf.Koanf, Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()); err != nil {
		return nil, Config{}, fmt.Errorf("cannot parse default config: %w", err)
	}
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, Config{}, fmt.Errorf("cannot parse config file %s: %w", path, err)
			}
		}
	}

	conf := Config{}
	if err := k.Unmarshal("", &conf); err != nil {
		return nil, Config{}, fmt.Errorf("cannot unmarshal config: %w", err)
	}
	return k, conf, nil
}

// LoadSecrets Loads the secret variables (from the environment and an optional
// .env file) and overrides the config
func LoadSecrets(c Config) Config {
	_ = godotenv.Load()

	if mongoURI := os.Getenv("MONGO_URI"); mongoURI != "" {
		c.Mongo.URI = mongoURI
	}
	if redisURI := os.Getenv("REDIS_URI"); redisURI != "" {
		c.Redis.URI = redisURI
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		c.Kafka.Brokers = strings.Split(kafkaBrokers, ",")
	}

	if isProdMode := os.Getenv("IS_PROD_MODE"); isProdMode != "" {
		c.IsProdMode = isProdMode == "true"
	}
	return c
}
