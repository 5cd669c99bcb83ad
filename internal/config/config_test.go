package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}, Cache: CacheConfig{Driver: "memory"}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_CacheDrivers(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := Config{HTTP: HTTPConfig{Port: 8080}, Cache: CacheConfig{Driver: "memcached"}}
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for unknown cache driver")
		}
	})

	t.Run("redis without addrs", func(t *testing.T) {
		cfg := Config{HTTP: HTTPConfig{Port: 8080}, Cache: CacheConfig{Driver: "redis"}}
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for redis driver without addrs")
		}
	})

	t.Run("valid drivers", func(t *testing.T) {
		for _, driver := range []string{"memory", "none"} {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Cache: CacheConfig{Driver: driver}}
			if err := cfg.Validate(); err != nil {
				t.Errorf("driver %q: unexpected error %v", driver, err)
			}
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Cache.Driver != "memory" {
		t.Errorf("expected memory cache driver, got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTLSec != 300 {
		t.Errorf("expected TTLSec=300, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Search.FuzzyThreshold != 0.3 {
		t.Errorf("expected FuzzyThreshold=0.3, got %v", cfg.Search.FuzzyThreshold)
	}
	if cfg.Search.VocabDeals != 1000 || cfg.Search.VocabCompanies != 500 {
		t.Errorf("expected vocab bounds 1000/500, got %d/%d", cfg.Search.VocabDeals, cfg.Search.VocabCompanies)
	}
	if cfg.Search.VocabRefreshSec != 600 {
		t.Errorf("expected VocabRefreshSec=600, got %d", cfg.Search.VocabRefreshSec)
	}
	if cfg.Analytics.QueueSize != 1024 {
		t.Errorf("expected QueueSize=1024, got %d", cfg.Analytics.QueueSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DEALSEARCH_TEST_PORT", "9999")

	got := string(expandEnvVars([]byte("port: ${DEALSEARCH_TEST_PORT}")))
	if got != "port: 9999" {
		t.Errorf("got %q", got)
	}

	got = string(expandEnvVars([]byte("driver: ${DEALSEARCH_TEST_MISSING:-memory}")))
	if got != "driver: memory" {
		t.Errorf("default not applied: %q", got)
	}

	got = string(expandEnvVars([]byte("pw: ${DEALSEARCH_TEST_MISSING}")))
	if got != "pw: " {
		t.Errorf("missing var should expand empty: %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("default env = %q, want local", env)
	}

	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("env = %q, want prod", env)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(dir+"/config", 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := []byte("http:\n  port: 8123\ncache:\n  driver: none\n")
	if err := os.WriteFile(dir+"/config/test.yaml", yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldwd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != 8123 {
		t.Errorf("port = %d, want 8123", cfg.HTTP.Port)
	}
	if cfg.Cache.Driver != "none" {
		t.Errorf("driver = %q, want none", cfg.Cache.Driver)
	}
	// Defaults applied on top of the file.
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("shutdown default missing, got %d", cfg.HTTP.ShutdownSec)
	}
}
