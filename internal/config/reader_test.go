package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEnvReader_Defaults(t *testing.T) {
	t.Setenv("ENV", EnvDev)

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Driver != StoreDriverPostgres {
		t.Fatalf("expected default store driver %q, got %q", StoreDriverPostgres, cfg.Store.Driver)
	}
	if cfg.HTTP.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.HTTP.Port)
	}
	if cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected default shutdown timeout 5s, got %s", cfg.HTTP.ShutdownTimeout)
	}
	if !reflect.DeepEqual(cfg.HTTP.AllowedOrigins, []string{"*"}) {
		t.Fatalf("unexpected allowed origins: %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Postgres.Port != 5432 {
		t.Fatalf("expected default postgres port 5432, got %d", cfg.Postgres.Port)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Fatalf("unexpected metrics config: %+v", cfg.Metrics)
	}
}

func TestEnvReader_Overrides(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("STORE_DRIVER", StoreDriverMySQL)
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Driver != StoreDriverMySQL {
		t.Fatalf("expected store driver %q, got %q", StoreDriverMySQL, cfg.Store.Driver)
	}
	if cfg.MySQL.Host != "db.internal" {
		t.Fatalf("expected mysql host db.internal, got %q", cfg.MySQL.Host)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.HTTP.AllowedOrigins, want) {
		t.Fatalf("expected allowed origins %v, got %v", want, cfg.HTTP.AllowedOrigins)
	}
}

func TestEnvReader_RejectsUnknownValues(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		t.Setenv("ENV", "staging")
		if _, err := NewEnvReader().Read(); err == nil {
			t.Fatalf("expected error for unknown env")
		}
	})

	t.Run("store driver", func(t *testing.T) {
		t.Setenv("ENV", EnvLocal)
		t.Setenv("STORE_DRIVER", "sqlite")
		if _, err := NewEnvReader().Read(); err == nil {
			t.Fatalf("expected error for unknown store driver")
		}
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("ENV", EnvLocal)
		t.Setenv("LOG_LEVEL", "loud")
		if _, err := NewEnvReader().Read(); err == nil {
			t.Fatalf("expected error for unknown log level")
		}
	})
}

func TestConfig_StorePingTimeout(t *testing.T) {
	cfg := &Config{
		Store:    StoreConfig{Driver: StoreDriverPostgres},
		Postgres: PostgresConfig{PingTimeout: 2 * time.Second},
		MySQL:    MySQLConfig{PingTimeout: 3 * time.Second},
	}
	if got := cfg.StorePingTimeout(); got != 2*time.Second {
		t.Fatalf("expected postgres ping timeout 2s, got %s", got)
	}

	cfg.Store.Driver = StoreDriverMySQL
	if got := cfg.StorePingTimeout(); got != 3*time.Second {
		t.Fatalf("expected mysql ping timeout 3s, got %s", got)
	}
}

func TestFileReader_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`env: local
http:
  port: "8081"
store:
  driver: mysql
mysql:
  host: mysql.local
  database: tracker
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFileReader(path).Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != EnvLocal {
		t.Fatalf("expected env %q, got %q", EnvLocal, cfg.Env)
	}
	if cfg.HTTP.Port != "8081" {
		t.Fatalf("expected port 8081, got %q", cfg.HTTP.Port)
	}
	if cfg.MySQL.Host != "mysql.local" || cfg.MySQL.Database != "tracker" {
		t.Fatalf("unexpected mysql config: %+v", cfg.MySQL)
	}
	if cfg.MySQL.Port != 3306 {
		t.Fatalf("expected default mysql port 3306, got %d", cfg.MySQL.Port)
	}
}

func TestFileReader_MissingFile(t *testing.T) {
	_, err := NewFileReader(filepath.Join(t.TempDir(), "absent.yaml")).Read()
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
