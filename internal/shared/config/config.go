package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"

	defaultHFAPIURL = "https://router.huggingface.co/hf-inference/models"
)

var modelNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(/[A-Za-z0-9][A-Za-z0-9._-]*)?$`)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	LogLevel          string
	CORSAllowOrigin   []string
	QAProvider        string
	ModelName         string
	HFAPIURL          string
	HFAPIToken        string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	QATimeoutSeconds  int
	LegacyStatusCodes bool
	MaxUploadBytes    int64
	AnswerRateLimit   float64
	AnswerRateBurst   int

	// SessionsEnabled gives each X-Session-Id its own document slot. Off by
	// default: one process-wide slot.
	SessionsEnabled     bool
	SessionMaxDocuments int
	SessionTTLMinutes   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	logLevel := "info"
	if env == "dev" || env == "local" {
		logLevel = "debug"
	}

	return Config{
		Port:                getEnv("PORT", "5000"),
		Env:                 env,
		LogLevel:            getEnv("LOG_LEVEL", logLevel),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		QAProvider:          normalizeProvider(getEnv("QA_PROVIDER", ProviderHuggingFace)),
		ModelName:           strings.TrimSpace(os.Getenv("MODEL_NAME")),
		HFAPIURL:            strings.TrimRight(getEnv("HF_API_URL", defaultHFAPIURL), "/"),
		HFAPIToken:          getEnv("HF_API_TOKEN", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		QATimeoutSeconds:    getEnvInt("QA_TIMEOUT_SECONDS", 120),
		LegacyStatusCodes:   getEnvBool("LEGACY_STATUS_CODES", false),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 0)),
		AnswerRateLimit:     getEnvFloat("RATE_LIMIT_ANSWER_RPS", 0),
		AnswerRateBurst:     getEnvInt("RATE_LIMIT_ANSWER_BURST", 0),
		SessionsEnabled:     getEnvBool("SESSIONS_ENABLED", false),
		SessionMaxDocuments: getEnvInt("SESSION_MAX_DOCUMENTS", 100),
		SessionTTLMinutes:   getEnvInt("SESSION_TTL_MINUTES", 60),
	}
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.ModelName == "" {
		errs = append(errs, errors.New("MODEL_NAME is required"))
	} else if !modelNamePattern.MatchString(c.ModelName) {
		errs = append(errs, fmt.Errorf("MODEL_NAME %q is not a valid model id", c.ModelName))
	}
	switch c.QAProvider {
	case ProviderHuggingFace:
		if c.HFAPIURL == "" {
			errs = append(errs, errors.New("HF_API_URL must not be empty"))
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for QA_PROVIDER=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("QA_PROVIDER %q is not supported", c.QAProvider))
	}
	if c.QATimeoutSeconds <= 0 {
		errs = append(errs, errors.New("QA_TIMEOUT_SECONDS must be positive"))
	}
	if c.SessionsEnabled && c.SessionMaxDocuments <= 0 {
		errs = append(errs, errors.New("SESSION_MAX_DOCUMENTS must be positive when SESSIONS_ENABLED=true"))
	}
	return errors.Join(errs...)
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		// Missing files are expected outside local development.
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "huggingface", "hf", "hf-inference":
		return ProviderHuggingFace
	default:
		return p
	}
}
