// README: Config loader with env defaults for HTTP, DB, Redis, Firebase, Maps, and AI settings.
package config

import "os"

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Maps struct {
		APIKey string
	}
	AI struct {
		// Provider selects the extraction backend: "gemini" or "demo".
		Provider  string
		GeminiKey string
	}
	Chat struct {
		// DefaultLocation is used as the search fallback when a turn
		// carries no user location.
		DefaultLocation string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("COURIER_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("COURIER_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("COURIER_REDIS_ADDR", "")
	cfg.Firebase.ProjectID = envOrDefault("COURIER_FIREBASE_PROJECT_ID", "")
	cfg.Firebase.CredentialsFile = envOrDefault("COURIER_FIREBASE_CREDENTIALS", "")
	cfg.Maps.APIKey = envOrDefault("MAPS_API_KEY", "")
	cfg.AI.Provider = envOrDefault("COURIER_AI_PROVIDER", "gemini")
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", "")
	cfg.Chat.DefaultLocation = envOrDefault("COURIER_DEFAULT_LOCATION", "")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
