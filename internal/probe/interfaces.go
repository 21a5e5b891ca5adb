package probe

import (
	"context"

	"nvme-validator/pkg/types"
)

// Inventory defines the interface for device enumeration sources
type Inventory interface {
	// ListDevices returns the NVMe devices present on the host
	ListDevices(ctx context.Context) ([]types.Device, error)

	// RootBackingDevice returns the block device name backing the
	// root filesystem (e.g. nvme0n1)
	RootBackingDevice(ctx context.Context) (string, error)
}

// LinkProbe defines the interface for PCIe link state probes
type LinkProbe interface {
	// LinkState returns the current and maximum link width/speed
	LinkState(ctx context.Context, dev types.Device) (types.LinkState, error)
}

// HealthProbe defines the interface for SMART health probes
type HealthProbe interface {
	// Health returns the SMART fields used for classification
	Health(ctx context.Context, dev types.Device) (types.SmartHealth, error)
}

// BenchProbe defines the interface for I/O benchmark probes
type BenchProbe interface {
	// RunProfile runs one workload profile against the device and
	// returns its aggregate throughput and latency numbers
	RunProfile(ctx context.Context, dev types.Device, profile types.BenchProfile) (types.BenchResult, error)
}

// KernelLogProbe defines the interface for kernel ring buffer scans
type KernelLogProbe interface {
	// ResetBuffer clears the kernel ring buffer
	ResetBuffer(ctx context.Context) error

	// CountPattern counts buffer lines matching a pattern class
	CountPattern(ctx context.Context, pattern types.LogPattern) (int, error)
}
