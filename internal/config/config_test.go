package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("driver = %q", cfg.DBDriver)
	}
	if cfg.ToolTimeout != 2*time.Minute {
		t.Errorf("timeout = %v", cfg.ToolTimeout)
	}
	if cfg.MaxArchiveBytes != 250<<20 {
		t.Errorf("max archive = %d", cfg.MaxArchiveBytes)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("TOOL_TIMEOUT", "30s")
	t.Setenv("MAX_ARCHIVE_BYTES", "1024")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9999" || cfg.DBDriver != "postgres" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ToolTimeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.ToolTimeout)
	}
	if cfg.MaxArchiveBytes != 1024 {
		t.Errorf("max archive = %d", cfg.MaxArchiveBytes)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
	t.Setenv("TOOL_TIMEOUT", "soon")
	t.Setenv("MAX_ARCHIVE_BYTES", "-5")

	cfg := FromEnv()
	if cfg.ToolTimeout != 2*time.Minute {
		t.Errorf("timeout = %v", cfg.ToolTimeout)
	}
	if cfg.MaxArchiveBytes != 250<<20 {
		t.Errorf("max archive = %d", cfg.MaxArchiveBytes)
	}
}
