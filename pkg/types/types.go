package types

import (
	"fmt"
	"time"
)

// Severity classifies a single validation log entry
type Severity string

const (
	SeverityPass Severity = "PASS"
	SeverityFail Severity = "FAIL"
	SeverityWarn Severity = "WARN"
	SeverityInfo Severity = "INFO"
)

// Entry represents one classified, timestamped validation outcome
type Entry struct {
	Severity Severity
	Time     time.Time
	Module   string
	Message  string
}

// String formats the entry as a single log line
func (e Entry) String() string {
	return fmt.Sprintf("[%s] [%s] [%s] %s", e.Severity, e.Time.Format("2006-01-02 15:04:05"), e.Module, e.Message)
}

// Device represents an NVMe device enumerated for a validation run
type Device struct {
	Path      string // /dev/nvme0n1
	Model     string
	Serial    string
	SizeBytes int64
}

// Name returns the kernel block device name (nvme0n1 for /dev/nvme0n1)
func (d Device) Name() string {
	for i := len(d.Path) - 1; i >= 0; i-- {
		if d.Path[i] == '/' {
			return d.Path[i+1:]
		}
	}
	return d.Path
}

// LinkState holds PCIe link attributes for a device.
// A nil field means the attribute could not be read from sysfs.
type LinkState struct {
	CurrentWidth *int
	MaxWidth     *int
	CurrentSpeed *string // e.g. "16.0 GT/s PCIe"
	MaxSpeed     *string
}

// SmartHealth holds the SMART fields the validator classifies.
// Nil numeric fields and an empty SelfAssessment mean the probe
// could not produce the value.
type SmartHealth struct {
	SelfAssessment  string // "PASSED" when healthy
	CriticalWarning *int
	Temperature     *float64 // composite, Celsius
	MediaErrors     *int64
}

// BenchProfile describes one fio workload profile
type BenchProfile struct {
	Name       string
	Mode       string // fio rw= value: read, write, randread, randwrite
	BlockSize  string
	Jobs       int
	QueueDepth int
	Duration   time.Duration
}

// BenchResult holds the aggregate numbers from one completed fio profile
type BenchResult struct {
	BandwidthKBps int64
	IOPS          float64
	LatencyP99us  float64
	ErrorCount    int64
}

// LogPattern identifies a class of kernel-log lines the scan counts
type LogPattern string

const (
	PatternIOError  LogPattern = "io_error"
	PatternLinkDown LogPattern = "link_down"
)

// DefaultBenchProfiles returns the four fixed I/O profiles run per device
func DefaultBenchProfiles() []BenchProfile {
	return []BenchProfile{
		{Name: "seq-read", Mode: "read", BlockSize: "1M", Jobs: 4, QueueDepth: 32, Duration: 60 * time.Second},
		{Name: "seq-write", Mode: "write", BlockSize: "1M", Jobs: 4, QueueDepth: 32, Duration: 60 * time.Second},
		{Name: "rand-read", Mode: "randread", BlockSize: "4k", Jobs: 8, QueueDepth: 64, Duration: 60 * time.Second},
		{Name: "rand-write", Mode: "randwrite", BlockSize: "4k", Jobs: 8, QueueDepth: 64, Duration: 60 * time.Second},
	}
}
