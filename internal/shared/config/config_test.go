package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MODEL_NAME", "distilbert/distilbert-base-cased-distilled-squad")
	t.Setenv("QA_PROVIDER", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("LEGACY_STATUS_CODES", "")
	t.Setenv("SESSIONS_ENABLED", "")
	t.Setenv("SESSION_MAX_DOCUMENTS", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.QAProvider != ProviderHuggingFace {
		t.Fatalf("expected huggingface provider, got %q", cfg.QAProvider)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.LegacyStatusCodes {
		t.Fatal("expected legacy status codes disabled by default")
	}
	if cfg.QATimeoutSeconds != 120 {
		t.Fatalf("expected 120s timeout, got %d", cfg.QATimeoutSeconds)
	}
	if cfg.SessionsEnabled {
		t.Fatal("expected sessions disabled by default")
	}
	if cfg.SessionMaxDocuments != 100 || cfg.SessionTTLMinutes != 60 {
		t.Fatalf("unexpected session bounds %d/%d", cfg.SessionMaxDocuments, cfg.SessionTTLMinutes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MODEL_NAME=deepset/roberta-base-squad2\nLEGACY_STATUS_CODES=true\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("MODEL_NAME", "")
	t.Setenv("LEGACY_STATUS_CODES", "")
	// godotenv never overrides variables that are already set, so drop them first.
	os.Unsetenv("MODEL_NAME")
	os.Unsetenv("LEGACY_STATUS_CODES")

	cfg := Load()
	if cfg.ModelName != "deepset/roberta-base-squad2" {
		t.Fatalf("expected model from .env, got %q", cfg.ModelName)
	}
	if !cfg.LegacyStatusCodes {
		t.Fatal("expected legacy status codes from .env")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		QAProvider:       ProviderHuggingFace,
		ModelName:        "deepset/roberta-base-squad2",
		HFAPIURL:         defaultHFAPIURL,
		QATimeoutSeconds: 30,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing model", mutate: func(c *Config) { c.ModelName = "" }, wantErr: "MODEL_NAME is required"},
		{name: "malformed model", mutate: func(c *Config) { c.ModelName = "bad model/../x" }, wantErr: "not a valid model id"},
		{name: "unknown provider", mutate: func(c *Config) { c.QAProvider = "local" }, wantErr: "not supported"},
		{name: "openai without key", mutate: func(c *Config) { c.QAProvider = ProviderOpenAI }, wantErr: "OPENAI_API_KEY"},
		{name: "openai with key", mutate: func(c *Config) { c.QAProvider = ProviderOpenAI; c.OpenAIAPIKey = "sk-test"; c.ModelName = "gpt-4o-mini" }},
		{name: "zero timeout", mutate: func(c *Config) { c.QATimeoutSeconds = 0 }, wantErr: "QA_TIMEOUT_SECONDS"},
		{name: "sessions without bound", mutate: func(c *Config) { c.SessionsEnabled = true }, wantErr: "SESSION_MAX_DOCUMENTS"},
		{name: "sessions with bound", mutate: func(c *Config) { c.SessionsEnabled = true; c.SessionMaxDocuments = 10 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNormalizeProvider(t *testing.T) {
	for raw, want := range map[string]string{
		"HF":           ProviderHuggingFace,
		" huggingface": ProviderHuggingFace,
		"OpenAI":       ProviderOpenAI,
		"other":        "other",
	} {
		if got := normalizeProvider(raw); got != want {
			t.Fatalf("normalizeProvider(%q) = %q, want %q", raw, got, want)
		}
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), which the pinned toolchain does not provide.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
