package config

import "os"

type Config struct {
	Addr           string
	BackendURL     string
	SessionBackend string
	StateDir       string
	RedisAddr      string
	EnableTracing  bool
}

func Load() Config {
	return Config{
		Addr:           getenv("ADMIN_ADDR", ":8080"),
		BackendURL:     getenv("FLOWERSTORE_API_URL", "http://localhost:9090"),
		SessionBackend: getenv("SESSION_BACKEND", "file"),
		StateDir:       getenv("STATE_DIR", "./data"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		EnableTracing:  os.Getenv("ENABLE_TRACING") == "1",
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
