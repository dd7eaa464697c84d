package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Service holds the runtime settings of the API and worker binaries, read from the environment.
type Service struct {
	API      APIConfig
	Kafka    KafkaConfig
	InfluxDB InfluxDBConfig

	// ModelConfigPath optionally points at a YAML model configuration.
	ModelConfigPath string
	// ResultCacheTTL is how long assessment results stay retrievable by id.
	ResultCacheTTL time.Duration
}

type APIConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	GroupID       string
	ConsumerCount int
}

type InfluxDBConfig struct {
	URL         string
	Org         string
	Token       string
	Bucket      string
	Measurement string
}

// LoadService loads service configuration from environment variables with defaults.
func LoadService() *Service {
	return &Service{
		API: APIConfig{
			Port:           getEnv("API_PORT", "8080"),
			Env:            getEnv("API_ENV", "development"),
			AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvStringSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:         getEnv("KAFKA_TOPIC", "building-surveys"),
			GroupID:       getEnv("KAFKA_GROUP_ID", "rcbm-worker"),
			ConsumerCount: getEnvInt("KAFKA_CONSUMER_COUNT", 1),
		},
		InfluxDB: InfluxDBConfig{
			URL:         getEnv("INFLUXDB_URL", "http://localhost:8086"),
			Org:         getEnv("INFLUXDB_ORG", "rcbm"),
			Token:       getEnv("INFLUX_TOKEN", ""),
			Bucket:      getEnv("INFLUXDB_BUCKET", "heat-demand"),
			Measurement: getEnv("INFLUXDB_MEASUREMENT", "heat_demand"),
		},
		ModelConfigPath: getEnv("RCBM_CONFIG", ""),
		ResultCacheTTL:  getEnvDuration("RESULT_CACHE_TTL", 30*time.Minute),
	}
}

// LoadModel returns the model configuration named by RCBM_CONFIG, or defaults when unset.
func (s *Service) LoadModel() (*Config, error) {
	if s.ModelConfigPath == "" {
		return &Config{}, nil
	}
	return Load(s.ModelConfigPath)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
