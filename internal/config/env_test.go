package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SPLITFIRE_TEST_HOST", "example")
	if got := GetEnv("SPLITFIRE_TEST_HOST", "fallback"); got != "example" {
		t.Errorf("GetEnv = %q, want %q", got, "example")
	}
	if got := GetEnv("SPLITFIRE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SPLITFIRE_TEST_INT", "42")
	n, err := GetEnvInt("SPLITFIRE_TEST_INT", 7)
	if err != nil || n != 42 {
		t.Errorf("GetEnvInt = %d, %v; want 42, nil", n, err)
	}

	t.Setenv("SPLITFIRE_TEST_INT", "nope")
	n, err = GetEnvInt("SPLITFIRE_TEST_INT", 7)
	if err == nil {
		t.Error("expected parse error")
	}
	if n != 7 {
		t.Errorf("expected fallback 7 on error, got %d", n)
	}

	n, err = GetEnvInt("SPLITFIRE_TEST_INT_UNSET", 7)
	if err != nil || n != 7 {
		t.Errorf("GetEnvInt unset = %d, %v; want 7, nil", n, err)
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{"valid", "1024.5", 1024.5, false},
		{"empty", "", 800, false},
		{"garbage", "wide", 800, true},
		{"zero", "0", 800, true},
		{"negative", "-10", 800, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPLITFIRE_TEST_FLOAT", tt.value)
			got, err := GetEnvFloat("SPLITFIRE_TEST_FLOAT", 800)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetEnvFloat error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetEnvFloat = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SPLITFIRE_TEST_LOADED=yes\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("SPLITFIRE_TEST_LOADED", "")
	os.Unsetenv("SPLITFIRE_TEST_LOADED")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("SPLITFIRE_TEST_LOADED"); got != "yes" {
		t.Errorf("expected variable from env file, got %q", got)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("expected nil error for missing file, got %v", err)
	}
}
