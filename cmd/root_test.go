package cmd

import (
	"context"
	"strings"
	"testing"

	"gorelay/config"
)

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	err := Execute(context.Background(), []string{"--version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_Help verifies --help returns without error.
func TestExecute_Help(t *testing.T) {
	err := Execute(context.Background(), []string{"--help"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	err := Execute(context.Background(), []string{"--nonexistent-flag"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// TestExecute_InvalidPort verifies a bad port aborts before any socket
// is opened.
func TestExecute_InvalidPort(t *testing.T) {
	for _, spec := range []string{"no", "0", "70000"} {
		t.Run(spec, func(t *testing.T) {
			err := Execute(context.Background(), []string{spec})
			if err == nil {
				t.Fatal("expected startup error")
			}
			if !strings.Contains(err.Error(), "port") {
				t.Errorf("error should mention the port: %v", err)
			}
		})
	}
}

// TestExecute_InvalidAddress verifies a bad address aborts startup.
func TestExecute_InvalidAddress(t *testing.T) {
	err := Execute(context.Background(), []string{"1300", "not-an-ip"})
	if err == nil {
		t.Fatal("expected startup error")
	}
	if !strings.Contains(err.Error(), "address") {
		t.Errorf("error should mention the address: %v", err)
	}
}

func TestParsePositional(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPort int
		wantAddr string
		wantErr  bool
	}{
		{"none", nil, 1300, "127.0.0.1", false},
		{"port only", []string{"9000"}, 9000, "127.0.0.1", false},
		{"port and address", []string{"9000", "0.0.0.0"}, 9000, "0.0.0.0", false},
		{"bad port", []string{"nope"}, 0, "", true},
		{"too many", []string{"9000", "0.0.0.0", "extra"}, 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := parsePositional(cfg, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Port != tt.wantPort || cfg.Address != tt.wantAddr {
				t.Errorf("got %d/%s, want %d/%s",
					cfg.Port, cfg.Address, tt.wantPort, tt.wantAddr)
			}
		})
	}
}
