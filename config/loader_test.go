package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Port(t *testing.T) {
	t.Setenv("GORELAY_PORT", "9000")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
}

func TestLoadFromEnv_Address(t *testing.T) {
	t.Setenv("GORELAY_ADDRESS", "0.0.0.0")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Address != "0.0.0.0" {
		t.Errorf("Address = %q, want 0.0.0.0", cfg.Address)
	}
}

func TestLoadFromEnv_WSPort(t *testing.T) {
	t.Setenv("GORELAY_WS_PORT", "9001")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.WSPort != 9001 {
		t.Errorf("WSPort = %d, want 9001", cfg.WSPort)
	}
}

func TestLoadFromEnv_Stats(t *testing.T) {
	t.Setenv("GORELAY_STATS", "30")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.StatsInterval != 30*time.Second {
		t.Errorf("StatsInterval = %v, want 30s", cfg.StatsInterval)
	}
}

func TestLoadFromEnv_Booleans(t *testing.T) {
	for _, v := range []string{"1", "true", "yes", "TRUE", "Yes"} {
		t.Run("quiet="+v, func(t *testing.T) {
			t.Setenv("GORELAY_QUIET", v)
			cfg := Default()
			LoadFromEnv(cfg)
			if !cfg.Quiet {
				t.Error("Quiet should be true")
			}
		})
	}

	t.Run("quiet=no", func(t *testing.T) {
		t.Setenv("GORELAY_QUIET", "no")
		cfg := Default()
		LoadFromEnv(cfg)
		if cfg.Quiet {
			t.Error("Quiet should be false")
		}
	})
}

func TestLoadFromEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("GORELAY_PORT", "not-a-number")
	t.Setenv("GORELAY_VERBOSE", "")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
	}
	if cfg.Verbose != 0 {
		t.Errorf("Verbose = %d, want 0", cfg.Verbose)
	}
}

func TestLoadFromEnv_EmptyEnvKeepsDefaults(t *testing.T) {
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != DefaultPort || cfg.Address != DefaultAddress {
		t.Errorf("defaults disturbed: %+v", cfg)
	}
}
