package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration read from the environment (and an optional .env file).
type Config struct {
	Env      string
	LogLevel string

	ListenAddr     string
	AllowedOrigins []string

	LLMProvider   string
	LLMModel      string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	GitHubUsername string
	GitHubToken    string

	RedisAddr     string
	RedisPassword string

	ProfilePath string
	ResumePath  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ContactTo    string
	ContactFrom  string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", ""),
		ListenAddr:     getEnv("LISTEN_ADDR", ServerListenAddr),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		LLMProvider:    strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderGemini)),
		LLMModel:       getEnv("LLM_MODEL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		GitHubUsername: getEnv("GITHUB_USERNAME", ""),
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		ProfilePath:    getEnv("PROFILE_PATH", ""),
		ResumePath:     getEnv("RESUME_PATH", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		ContactTo:      getEnv("CONTACT_TO", ""),
		ContactFrom:    getEnv("CONTACT_FROM", ""),
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModel(cfg.LLMProvider)
	}
	return cfg
}

func (c *Config) IsProd() bool {
	return c.Env == "production" || c.Env == "prod"
}

// LLMAPIKey returns the key of the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == LLMProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func (c *Config) HasLLMKey() bool {
	return c.LLMAPIKey() != ""
}

func (c *Config) HasSMTP() bool {
	return c.SMTPHost != "" && c.ContactTo != ""
}

func defaultModel(provider string) string {
	if provider == LLMProviderOpenAI {
		return OpenAIModelName
	}
	return GeminiModelName
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
