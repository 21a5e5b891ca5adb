package probe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nvme-validator/pkg/types"
)

// SysfsLinkProbe reads PCIe link attributes from the sysfs tree.
// For a namespace block device nvme0n1, the controller's PCI device
// directory is /sys/block/nvme0n1/device/device.
type SysfsLinkProbe struct {
	Root string
}

// NewSysfsLinkProbe creates a link probe rooted at /sys/block
func NewSysfsLinkProbe() *SysfsLinkProbe {
	return &SysfsLinkProbe{Root: "/sys/block"}
}

// LinkState returns the current and maximum link width/speed for the
// device. Attributes that cannot be read are left nil rather than
// filled with placeholder values.
func (p *SysfsLinkProbe) LinkState(_ context.Context, dev types.Device) (types.LinkState, error) {
	base := filepath.Join(p.Root, dev.Name(), "device", "device")

	var state types.LinkState
	if w, ok := readSysfsInt(filepath.Join(base, "current_link_width")); ok {
		state.CurrentWidth = &w
	}
	if w, ok := readSysfsInt(filepath.Join(base, "max_link_width")); ok {
		state.MaxWidth = &w
	}
	if s, ok := readSysfsString(filepath.Join(base, "current_link_speed")); ok {
		state.CurrentSpeed = &s
	}
	if s, ok := readSysfsString(filepath.Join(base, "max_link_speed")); ok {
		state.MaxSpeed = &s
	}
	return state, nil
}

func readSysfsString(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	return value, true
}

func readSysfsInt(path string) (int, bool) {
	value, ok := readSysfsString(path)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
