package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DraftStoreMemory   = "memory"
	DraftStoreRedis    = "redis"
	DraftStoreDynamoDB = "dynamodb"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port           string
	BackendBaseURL string
	BackendTimeout time.Duration

	DraftStore  string
	DraftTTL    time.Duration
	DraftsTable string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string

	CORSAllowedOrigins   []string
	SanitizeProposalHTML bool
}

// Load reads the environment. Unparseable values fall back to their
// defaults and are logged.
func Load() Config {
	return Config{
		Port:           getenvDefault("PORT", "8080"),
		BackendBaseURL: getenvDefault("BACKEND_BASE_URL", "http://localhost:5000"),
		BackendTimeout: getenvDuration("BACKEND_TIMEOUT", 0),

		DraftStore:  strings.ToLower(getenvDefault("DRAFT_STORE", DraftStoreMemory)),
		DraftTTL:    getenvDuration("DRAFT_TTL", 24*time.Hour),
		DraftsTable: getenvDefault("DRAFTS_TABLE", "proposal_drafts"),

		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),

		// DynamoDB Local ignores credentials but the SDK still wants some.
		AWSRegion:          getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   os.Getenv("DYNAMODB_ENDPOINT"),

		CORSAllowedOrigins:   splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),
		SanitizeProposalHTML: getenvBool("SANITIZE_PROPOSAL_HTML", false),
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getenvDuration accepts Go durations ("30s") and plain seconds ("30").
func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("[config] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
