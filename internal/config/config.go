package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	JWTSecret string

	// UploadsRoot holds uploaded images plus request-scoped temp dirs
	// created during generation/correction runs.
	UploadsRoot string
	LogoKey     string // blob key of the institution logo embedded in exam headers

	// External bubble-sheet tooling.
	PythonBin     string
	BubbleScript  string
	CorrectScript string
	ToolTimeout   time.Duration

	MaxArchiveBytes int64

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:        addr,
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		JWTSecret:       envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		UploadsRoot:     envOr("UPLOADS_ROOT", "./uploads"),
		LogoKey:         envOr("LOGO_KEY", "img/logo.png"),
		PythonBin:       envOr("PYTHON_BIN", "python3"),
		BubbleScript:    envOr("BUBBLE_SCRIPT", "./scripts/bubble.py"),
		CorrectScript:   envOr("CORRECT_SCRIPT", "./scripts/correct.py"),
		ToolTimeout:     envDurOr("TOOL_TIMEOUT", 2*time.Minute),
		MaxArchiveBytes: envInt64Or("MAX_ARCHIVE_BYTES", 250<<20),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt64Or(k string, def int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(k), 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envDurOr(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
