package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"agniro/pkg/ai"
)

type AppConfig struct {
	Port     string
	DBPath   string
	AppEnv   string
	LogLevel string
	Country  string

	AI        ai.Settings
	AITimeout time.Duration

	VideoPreviewTimeout time.Duration
	SecureCookies       bool
	SessionIdle         time.Duration
}

// Load reads the environment, after .env when one exists. Problems are
// returned as warnings so that the caller can log them once a logger exists.
func Load() (AppConfig, []string) {
	var warnings []string
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnings = append(warnings, "loading .env: "+err.Error())
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		v := get(k, "")
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			warnings = append(warnings, k+": "+err.Error())
			return def
		}
		return d
	}
	flag := func(k string, def bool) bool {
		v := get(k, "")
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			warnings = append(warnings, k+": "+err.Error())
			return def
		}
		return b
	}

	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		DBPath:   get("DB_PATH", "agniro.db"),
		AppEnv:   get("APP_ENV", "prod"),
		LogLevel: get("LOG_LEVEL", "info"),
		Country:  get("COUNTRY", "Uganda"),
		AI: ai.Settings{
			Provider:     get("AI_PROVIDER", ""),
			LLMEndpoint:  get("LLM_ENDPOINT", ""),
			LLMAPIKey:    get("LLM_API_KEY", ""),
			LLMModel:     get("LLM_MODEL", "gpt-4o-mini"),
			GeminiAPIKey: get("GEMINI_API_KEY", ""),
			GeminiModel:  get("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		AITimeout:           dur("AI_TIMEOUT", 60*time.Second),
		VideoPreviewTimeout: dur("VIDEO_PREVIEW_TIMEOUT", 10*time.Second),
		SecureCookies:       flag("SECURE_COOKIES", false),
		SessionIdle:         dur("SESSION_IDLE", 2*time.Hour),
	}
	return cfg, warnings
}

// Fields renders cfg for logging with secrets masked.
func (c AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("db", c.DBPath),
		zap.String("env", c.AppEnv),
		zap.String("country", c.Country),
		zap.String("ai_provider", c.AI.ResolveProvider()),
		zap.String("llm_endpoint", c.AI.LLMEndpoint),
		zap.Bool("llm_key_set", c.AI.LLMAPIKey != ""),
		zap.Bool("gemini_key_set", c.AI.GeminiAPIKey != ""),
		zap.Duration("ai_timeout", c.AITimeout),
		zap.Bool("secure_cookies", c.SecureCookies),
	}
}
