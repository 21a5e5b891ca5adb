package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	// Clear environment variables
	os.Unsetenv("LOG_DIR")
	os.Unsetenv("PROBE_TIMEOUT")
	os.Unsetenv("LISTEN_ADDR")
	os.Unsetenv("TEMP_LIMIT_CELSIUS")

	config := New()

	if config.LogDir != "/var/log/nvme-validator" {
		t.Errorf("Expected default log dir /var/log/nvme-validator, got %s", config.LogDir)
	}

	if config.ProbeTimeout != 30*time.Second {
		t.Errorf("Expected default probe timeout 30s, got %v", config.ProbeTimeout)
	}

	if config.ListenAddr != "" {
		t.Errorf("Expected metrics listener disabled by default, got %s", config.ListenAddr)
	}

	if config.TemperatureLimit != 70 {
		t.Errorf("Expected default temperature limit 70, got %f", config.TemperatureLimit)
	}

	if len(config.Profiles) != 4 {
		t.Errorf("Expected 4 default bench profiles, got %d", len(config.Profiles))
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	os.Setenv("LOG_DIR", "/tmp/validate-logs")
	os.Setenv("PROBE_TIMEOUT", "45s")
	os.Setenv("LISTEN_ADDR", ":9200")
	os.Setenv("TEMP_LIMIT_CELSIUS", "65")

	defer func() {
		os.Unsetenv("LOG_DIR")
		os.Unsetenv("PROBE_TIMEOUT")
		os.Unsetenv("LISTEN_ADDR")
		os.Unsetenv("TEMP_LIMIT_CELSIUS")
	}()

	config := New()

	if config.LogDir != "/tmp/validate-logs" {
		t.Errorf("Expected log dir /tmp/validate-logs from env, got %s", config.LogDir)
	}

	if config.ProbeTimeout != 45*time.Second {
		t.Errorf("Expected probe timeout 45s from env, got %v", config.ProbeTimeout)
	}

	if config.ListenAddr != ":9200" {
		t.Errorf("Expected listen addr :9200 from env, got %s", config.ListenAddr)
	}

	if config.TemperatureLimit != 65 {
		t.Errorf("Expected temperature limit 65 from env, got %f", config.TemperatureLimit)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	content := `
log_dir: /data/validation
probe_timeout: 2m
temperature_limit_celsius: 68
bench_profiles:
  - name: quick-read
    mode: read
    block_size: 128k
    jobs: 2
    queue_depth: 8
    duration_seconds: 10
`
	path := filepath.Join(t.TempDir(), "validator.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config := New()
	if err := config.LoadFile(path); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	if config.LogDir != "/data/validation" {
		t.Errorf("Expected log dir /data/validation, got %s", config.LogDir)
	}

	if config.ProbeTimeout != 2*time.Minute {
		t.Errorf("Expected probe timeout 2m, got %v", config.ProbeTimeout)
	}

	if config.TemperatureLimit != 68 {
		t.Errorf("Expected temperature limit 68, got %f", config.TemperatureLimit)
	}

	if len(config.Profiles) != 1 {
		t.Fatalf("Expected 1 profile from file, got %d", len(config.Profiles))
	}

	p := config.Profiles[0]
	if p.Name != "quick-read" || p.Mode != "read" || p.Duration != 10*time.Second {
		t.Errorf("Unexpected profile from file: %+v", p)
	}
}

func TestLoadFileMissing(t *testing.T) {
	config := New()
	if err := config.LoadFile("/nonexistent/validator.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadFileInvalidProfile(t *testing.T) {
	content := `
bench_profiles:
  - block_size: 4k
`
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config := New()
	if err := config.LoadFile(path); err == nil {
		t.Error("Expected error for profile missing name and mode")
	}
}
