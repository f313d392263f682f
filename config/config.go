package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

type Config struct {
	Environment      string
	ServicePort      string
	MetricsPort      string
	DBDriver         string
	MongoDBConfig    MongoDBConfig
	JWTSecret        string
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	CORSAllowOrigins []string
}

type MongoDBConfig struct {
	URI    string
	DBHost string
	DBPort string
	DBName string
}

// ConnectionURI prefers an explicit MONGODB_URI and falls back to host and port.
func (c MongoDBConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}

	return fmt.Sprintf("mongodb://%s:%s", c.DBHost, c.DBPort)
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		Environment: os.Getenv("ENVIRONMENT"),
		ServicePort: getEnv("SERVICE_PORT", "3000"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverMongoDB)),
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBHost: getEnv("DB_HOST", "localhost"),
			DBPort: getEnv("DB_PORT", "27017"),
			DBName: getEnv("DB_NAME", "bulkNEST"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "bulknest-events"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,https://bulknest.web.app")),
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
