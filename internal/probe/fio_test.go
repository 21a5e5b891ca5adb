package probe

import (
	"testing"
)

const fioSample = `{
  "jobs": [
    {
      "jobname": "seq-read",
      "error": 0,
      "read": {
        "bw": 3244032,
        "iops": 3168.5,
        "clat_ns": {"percentile": {"99.000000": 1500000}}
      },
      "write": {
        "bw": 0,
        "iops": 0,
        "clat_ns": {"percentile": {}}
      }
    }
  ]
}`

func TestFioProbe_Interface(t *testing.T) {
	p := NewFioProbe()
	if p == nil {
		t.Fatal("NewFioProbe returned nil")
	}

	// Verify that FioProbe implements BenchProbe
	var _ BenchProbe = p
}

func TestParseFioResultRead(t *testing.T) {
	result, err := parseFioResult([]byte(fioSample), "read")
	if err != nil {
		t.Fatalf("parseFioResult returned error: %v", err)
	}

	if result.BandwidthKBps != 3244032 {
		t.Errorf("Expected bandwidth 3244032, got %d", result.BandwidthKBps)
	}
	if result.IOPS != 3168.5 {
		t.Errorf("Expected IOPS 3168.5, got %f", result.IOPS)
	}
	if result.LatencyP99us != 1500 {
		t.Errorf("Expected p99 latency 1500us, got %f", result.LatencyP99us)
	}
	if result.ErrorCount != 0 {
		t.Errorf("Expected 0 errors, got %d", result.ErrorCount)
	}
}

func TestParseFioResultWriteDirection(t *testing.T) {
	sample := `{
  "jobs": [
    {
      "jobname": "rand-write",
      "error": 2,
      "read": {"bw": 0, "iops": 0, "clat_ns": {"percentile": {}}},
      "write": {
        "bw": 819200,
        "iops": 204800.0,
        "clat_ns": {"percentile": {"99.000000": 90000}}
      }
    }
  ]
}`

	result, err := parseFioResult([]byte(sample), "randwrite")
	if err != nil {
		t.Fatalf("parseFioResult returned error: %v", err)
	}

	if result.BandwidthKBps != 819200 {
		t.Errorf("Expected write bandwidth 819200, got %d", result.BandwidthKBps)
	}
	if result.IOPS != 204800 {
		t.Errorf("Expected write IOPS 204800, got %f", result.IOPS)
	}
	if result.ErrorCount != 2 {
		t.Errorf("Expected 2 errors, got %d", result.ErrorCount)
	}
}

func TestParseFioResultNoJobs(t *testing.T) {
	if _, err := parseFioResult([]byte(`{"jobs": []}`), "read"); err == nil {
		t.Error("Expected error for empty jobs list")
	}
}

func TestParseFioResultInvalid(t *testing.T) {
	if _, err := parseFioResult([]byte("fio: command failed"), "read"); err == nil {
		t.Error("Expected error for non-JSON output")
	}
}
