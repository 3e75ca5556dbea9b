package config

import (
	"os"
	"strconv"
	"time"
)

// Common configuration types shared by the api and worker services.

// ServiceConfig holds basic service information
type ServiceConfig struct {
	Name    string
	Version string
}

// MetricsConfig holds metrics server configuration
type MetricsConfig struct {
	Port string
}

// NATSConfig holds NATS connection configuration
type NATSConfig struct {
	URL string
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	ServiceName string
	ZipkinURL   string
}

// DynamoDBConfig holds DynamoDB connection configuration
type DynamoDBConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// HTTPServerConfig holds HTTP server configuration
type HTTPServerConfig struct {
	Addr string
}

// CrawlConfig holds the knobs for one crawl run. The defaults encode the
// politeness contract: at most one request every RequestInterval per origin,
// never more than WorkerCount fetches in flight.
type CrawlConfig struct {
	UserAgent       string
	RequestTimeout  time.Duration
	RobotsTimeout   time.Duration
	RobotsCacheTTL  time.Duration
	RequestInterval time.Duration
	MaxBodyBytes    int64
	WorkerCount     int
	DefaultMaxPages int
	MaxPagesLimit   int
}

// WorkerConfig holds job orchestration configuration
type WorkerConfig struct {
	MaxAttempts        int
	RetryBackoffBase   time.Duration
	CancelPollInterval time.Duration
	StaleJobTimeout    time.Duration
	ReapInterval       time.Duration
}

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv gets an integer environment variable with a default value
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetInt64Env gets an int64 environment variable with a default value
func GetInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetDurationEnv gets a duration environment variable with a default value
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetBoolEnv gets a boolean environment variable with a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// NewServiceConfig creates a ServiceConfig with common defaults
func NewServiceConfig(serviceName string) ServiceConfig {
	return ServiceConfig{
		Name:    GetEnv("SERVICE_NAME", serviceName),
		Version: GetEnv("SERVICE_VERSION", "1.0.0"),
	}
}

// NewMetricsConfig creates a MetricsConfig with common defaults
func NewMetricsConfig(defaultPort string) MetricsConfig {
	return MetricsConfig{
		Port: GetEnv("METRICS_PORT", defaultPort),
	}
}

// NewNATSConfig creates a NATSConfig with common defaults
func NewNATSConfig() NATSConfig {
	return NATSConfig{
		URL: GetEnv("NATS_URL", "nats://localhost:4222"),
	}
}

// NewTracingConfig creates a TracingConfig with common defaults
func NewTracingConfig(serviceName string) TracingConfig {
	return TracingConfig{
		ServiceName: GetEnv("TRACING_SERVICE_NAME", serviceName),
		ZipkinURL:   GetEnv("ZIPKIN_URL", "http://localhost:9411/api/v2/spans"),
	}
}

// NewDynamoDBConfig creates a DynamoDBConfig with common defaults
func NewDynamoDBConfig() DynamoDBConfig {
	return DynamoDBConfig{
		Region:          GetEnv("AWS_REGION", "us-east-1"),
		Endpoint:        GetEnv("DYNAMODB_ENDPOINT", "http://localhost:8000"),
		AccessKeyID:     GetEnv("AWS_ACCESS_KEY_ID", "local"),
		SecretAccessKey: GetEnv("AWS_SECRET_ACCESS_KEY", "local"),
	}
}

// NewHTTPServerConfig creates an HTTPServerConfig with common defaults
func NewHTTPServerConfig(defaultAddr string) HTTPServerConfig {
	return HTTPServerConfig{
		Addr: GetEnv("HTTP_ADDR", defaultAddr),
	}
}

// NewCrawlConfig creates a CrawlConfig with common defaults
func NewCrawlConfig() CrawlConfig {
	return CrawlConfig{
		UserAgent:       GetEnv("CRAWLER_USER_AGENT", "SEOCrawlerBot/1.0 (+https://seocrawler.dev/bot)"),
		RequestTimeout:  GetDurationEnv("CRAWLER_REQUEST_TIMEOUT", 30*time.Second),
		RobotsTimeout:   GetDurationEnv("CRAWLER_ROBOTS_TIMEOUT", 10*time.Second),
		RobotsCacheTTL:  GetDurationEnv("CRAWLER_ROBOTS_CACHE_TTL", time.Hour),
		RequestInterval: GetDurationEnv("CRAWLER_REQUEST_INTERVAL", 500*time.Millisecond),
		MaxBodyBytes:    GetInt64Env("CRAWLER_MAX_BODY_BYTES", 5*1024*1024),
		WorkerCount:     GetIntEnv("CRAWLER_WORKERS", 2),
		DefaultMaxPages: GetIntEnv("CRAWLER_DEFAULT_MAX_PAGES", 50),
		MaxPagesLimit:   GetIntEnv("CRAWLER_MAX_PAGES_LIMIT", 500),
	}
}

// NewWorkerConfig creates a WorkerConfig with common defaults
func NewWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxAttempts:        GetIntEnv("WORKER_MAX_ATTEMPTS", 3),
		RetryBackoffBase:   GetDurationEnv("WORKER_RETRY_BACKOFF", 5*time.Second),
		CancelPollInterval: GetDurationEnv("WORKER_CANCEL_POLL_INTERVAL", 2*time.Second),
		StaleJobTimeout:    GetDurationEnv("WORKER_STALE_JOB_TIMEOUT", 10*time.Minute),
		ReapInterval:       GetDurationEnv("WORKER_REAP_INTERVAL", time.Minute),
	}
}
