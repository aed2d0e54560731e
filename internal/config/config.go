package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables

	S3BucketName   string
	ResumeAssetKey string

	// Resume token signing and quota policy.
	ResumeSigningSecret string
	ResumeMaxDownloads  int
	ResumeTokenTTL      time.Duration
	PublicBaseURL       string

	// SES transactional email.
	SESRegion string
	SESSender string

	// SNS lead alerts (optional; empty topic disables them).
	SNSRegion   string
	SNSTopicARN string

	// Headless CMS query endpoint.
	CMSBaseURL string
	CMSDataset string

	OpsKey         string
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	ResumeRequests string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			ResumeRequests: getEnv("DYNAMO_TABLE_RESUME_REQUESTS", "resume_requests"),
		},

		S3BucketName:   getEnv("S3_BUCKET_NAME", "portfolio-assets"),
		ResumeAssetKey: getEnv("RESUME_ASSET_KEY", "resume/resume.pdf"),

		ResumeSigningSecret: getEnv("RESUME_SIGNING_SECRET", ""),
		ResumeMaxDownloads:  getEnvInt("RESUME_MAX_DOWNLOADS", 3),
		ResumeTokenTTL:      getEnvDuration("RESUME_TOKEN_TTL", 6*time.Hour),
		PublicBaseURL:       getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),

		SESRegion: getEnv("SES_REGION", "us-east-1"),
		SESSender: getEnv("SES_SENDER", ""),

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_LEAD_TOPIC_ARN", ""),

		CMSBaseURL: getEnv("CMS_BASE_URL", ""),
		CMSDataset: getEnv("CMS_DATASET", "production"),

		OpsKey:         getEnv("OPS_KEY", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// IsProduction reports whether production-only policies apply
// (sender-domain denylist enforcement, among others).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
