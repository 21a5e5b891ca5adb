package types

import (
	"testing"
	"time"
)

func TestSeverityConstants(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"Pass", SeverityPass, "PASS"},
		{"Fail", SeverityFail, "FAIL"},
		{"Warn", SeverityWarn, "WARN"},
		{"Info", SeverityInfo, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.severity) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, tt.severity)
			}
		})
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{
		Severity: SeverityFail,
		Time:     time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Module:   "health",
		Message:  "temperature 72 C exceeds limit",
	}

	expected := "[FAIL] [2025-03-14 10:30:00] [health] temperature 72 C exceeds limit"
	if e.String() != expected {
		t.Errorf("Expected %q, got %q", expected, e.String())
	}
}

func TestDeviceName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/dev/nvme0n1", "nvme0n1"},
		{"/dev/nvme10n1", "nvme10n1"},
		{"nvme0n1", "nvme0n1"},
	}

	for _, tt := range tests {
		d := Device{Path: tt.path}
		if d.Name() != tt.expected {
			t.Errorf("Device{%q}.Name() = %q, expected %q", tt.path, d.Name(), tt.expected)
		}
	}
}

func TestDefaultBenchProfiles(t *testing.T) {
	profiles := DefaultBenchProfiles()
	if len(profiles) != 4 {
		t.Fatalf("Expected 4 profiles, got %d", len(profiles))
	}

	modes := map[string]bool{}
	for _, p := range profiles {
		if p.Duration <= 0 {
			t.Errorf("Profile %s has no time budget", p.Name)
		}
		if p.Jobs <= 0 || p.QueueDepth <= 0 {
			t.Errorf("Profile %s has invalid job/queue settings", p.Name)
		}
		modes[p.Mode] = true
	}

	for _, mode := range []string{"read", "write", "randread", "randwrite"} {
		if !modes[mode] {
			t.Errorf("Missing profile mode %s", mode)
		}
	}
}

func TestFioStatsLatencyP99(t *testing.T) {
	var s FioStats
	s.ClatNs.Percentile = map[string]float64{"99.000000": 250000}

	if got := s.LatencyP99us(); got != 250 {
		t.Errorf("Expected 250us, got %f", got)
	}

	var empty FioStats
	if got := empty.LatencyP99us(); got != 0 {
		t.Errorf("Expected 0 for missing percentiles, got %f", got)
	}
}
