package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	UploadDir         string
	MaxUploadBytes    int64
	Mode              string
	LLMModel          string
	OpenAIBaseURL     string
	LLMTimeoutSeconds int
	AllowedExtensions []string
}

// Mode names for the prompt/parse protocol. The two variants are not
// interchangeable; a deployment picks exactly one.
const (
	ModeScreening   = "screening"
	ModeProficiency = "proficiency"
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "development")),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploaded_files"),
		MaxUploadBytes:    getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		Mode:              normalizeMode(getEnv("SCREENING_MODE", ModeScreening)),
		LLMModel:          getEnv("LLM_MODEL", "gpt-3.5-turbo-instruct"),
		OpenAIBaseURL:     strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		LLMTimeoutSeconds: getEnvInt("OPENAI_TIMEOUT_SECONDS", 120),
		AllowedExtensions: splitAndTrim(getEnv("ALLOWED_EXTENSIONS", "pdf")),
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
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(p)); trimmed != "" {
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
	default:
		return "development"
	}
}

func normalizeMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ModeProficiency:
		return ModeProficiency
	default:
		return ModeScreening
	}
}
