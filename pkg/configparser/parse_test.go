package configparser

import (
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Port    string        `env:"TESTCFG_PORT" default:"8080"`
		Timeout time.Duration `env:"TESTCFG_TIMEOUT" default:"2s"`
		Debug   bool          `env:"TESTCFG_DEBUG" default:"false"`
		Workers int           `env:"TESTCFG_WORKERS" default:"4"`
	}
}

func TestParseEnvDefaults(t *testing.T) {
	cfg := &testConfig{}
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port: got %q", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 2*time.Second {
		t.Errorf("timeout: got %v", cfg.Server.Timeout)
	}
	if cfg.Server.Workers != 4 {
		t.Errorf("workers: got %d", cfg.Server.Workers)
	}
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("TESTCFG_PORT", "9000")
	t.Setenv("TESTCFG_DEBUG", "true")

	cfg := &testConfig{}
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("port: got %q", cfg.Server.Port)
	}
	if !cfg.Server.Debug {
		t.Error("debug: expected true")
	}
}

func TestParseEnvRejectsNonPointer(t *testing.T) {
	if err := ParseEnv(testConfig{}); err == nil {
		t.Fatal("expected error for non-pointer dst")
	}
}
