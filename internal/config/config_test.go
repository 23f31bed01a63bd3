package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("expected memory driver, got %q", cfg.Database.Driver)
	}
	if cfg.Search.CacheCapacity != 200 {
		t.Errorf("expected cache capacity 200, got %d", cfg.Search.CacheCapacity)
	}
	if cfg.History.Key != "ornaments_search_history" {
		t.Errorf("unexpected history key %q", cfg.History.Key)
	}
	if cfg.Search.Workers <= 0 {
		t.Error("expected positive worker count")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate_Drivers(t *testing.T) {
	tests := []struct {
		name    string
		db      DatabaseConfig
		wantErr bool
	}{
		{"memory", DatabaseConfig{Driver: DriverMemory}, false},
		{"redis with addrs", DatabaseConfig{Driver: DriverRedis, Addrs: []string{"localhost:6379"}}, false},
		{"valkey without addrs", DatabaseConfig{Driver: DriverValkey}, true},
		{"sqlite with path", DatabaseConfig{Driver: DriverSQLite, Path: "var/history.db"}, false},
		{"sqlite without path", DatabaseConfig{Driver: DriverSQLite}, true},
		{"unknown", DatabaseConfig{Driver: "mongo"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Database: tt.db}
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{-1, 70000} {
		cfg := Config{HTTP: HTTPConfig{Port: port}, Database: DatabaseConfig{Driver: DriverMemory}}
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_NegativeDefaultLimit(t *testing.T) {
	cfg := Default()
	cfg.Search.DefaultLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative default limit")
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SIGIMSAE_TEST_PORT", "9090")
	t.Setenv("SIGIMSAE_TEST_DRIVER", "")

	cfg, err := Parse([]byte(`
http:
  port: ${SIGIMSAE_TEST_PORT}
database:
  driver: ${SIGIMSAE_TEST_DRIVER:-sqlite}
  path: ${SIGIMSAE_TEST_DB_PATH:-var/history.db}
catalog:
  path: data/ornaments.xml
  watch: true
search:
  shard_size: 64
  workers: 2
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.Path != "var/history.db" {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if !cfg.Catalog.Watch {
		t.Error("expected catalog watch enabled")
	}
	if cfg.Search.ShardSize != 64 || cfg.Search.Workers != 2 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Search.CacheCapacity != 200 {
		t.Errorf("expected default cache capacity, got %d", cfg.Search.CacheCapacity)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("database:\n  driver: redis\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8181\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("expected port 8181, got %d", cfg.HTTP.Port)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.Path == "" {
		t.Error("expected catalog path")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SIGIMSAE_SET", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"${SIGIMSAE_SET}", "value"},
		{"${SIGIMSAE_UNSET_VAR}", ""},
		{"${SIGIMSAE_UNSET_VAR:-fallback}", "fallback"},
		{"${SIGIMSAE_SET:-fallback}", "value"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
