package probe

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"nvme-validator/internal/utils"
	"nvme-validator/pkg/types"

	"github.com/cockroachdb/errors"
)

// NvmeInventory enumerates NVMe devices via nvme-cli, falling back to
// lsblk when nvme-cli is not installed
type NvmeInventory struct{}

// NewNvmeInventory creates a new NvmeInventory instance
func NewNvmeInventory() *NvmeInventory {
	return &NvmeInventory{}
}

// ListDevices returns the NVMe devices present on the host
func (n *NvmeInventory) ListDevices(ctx context.Context) ([]types.Device, error) {
	if utils.CommandExists("nvme") {
		output, err := utils.RunCommand(ctx, "nvme", "list", "-o", "json")
		if err != nil {
			return nil, err
		}
		return parseNvmeList(output)
	}

	log.Printf("nvme CLI not found, falling back to lsblk")

	if !utils.CommandExists("lsblk") {
		return nil, errors.New("neither nvme nor lsblk is available")
	}

	output, err := utils.RunCommand(ctx, "lsblk", "-d", "-b", "-n", "-o", "NAME,SIZE,MODEL,SERIAL")
	if err != nil {
		return nil, err
	}
	return parseLsblkList(output), nil
}

// RootBackingDevice returns the block device name backing the root filesystem
func (n *NvmeInventory) RootBackingDevice(ctx context.Context) (string, error) {
	source, err := utils.RunCommand(ctx, "findmnt", "-n", "-o", "SOURCE", "/")
	if err != nil {
		return "", errors.Wrap(err, "resolving root mount source")
	}

	dev := strings.TrimSpace(string(source))
	if dev == "" {
		return "", errors.New("findmnt returned empty root source")
	}

	// Walk the partition up to its parent disk. PKNAME is empty when
	// the source already is a whole disk.
	parent, err := utils.RunCommand(ctx, "lsblk", "-n", "-o", "PKNAME", dev)
	if err != nil {
		return "", errors.Wrapf(err, "resolving parent of %s", dev)
	}

	if name := firstField(string(parent)); name != "" {
		return name, nil
	}
	return strings.TrimPrefix(dev, "/dev/"), nil
}

// parseNvmeList parses nvme list -o json output into devices
func parseNvmeList(output []byte) ([]types.Device, error) {
	var list types.NvmeListOutput
	if err := json.Unmarshal(output, &list); err != nil {
		return nil, errors.Wrap(err, "parsing nvme list JSON")
	}

	var devices []types.Device
	for _, d := range list.Devices {
		if d.DevicePath == "" {
			continue
		}
		devices = append(devices, types.Device{
			Path:      d.DevicePath,
			Model:     strings.TrimSpace(d.ModelNumber),
			Serial:    strings.TrimSpace(d.SerialNumber),
			SizeBytes: d.PhysicalSize,
		})
	}
	return devices, nil
}

// parseLsblkList parses plain lsblk output, keeping only NVMe entries
func parseLsblkList(output []byte) []types.Device {
	var devices []types.Device
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "nvme") {
			continue
		}

		dev := types.Device{Path: "/dev/" + fields[0]}
		if size, ok := utils.ParseInt64(fields[1]); ok {
			dev.SizeBytes = size
		}
		if len(fields) >= 3 && fields[2] != "-" {
			dev.Model = fields[2]
		}
		if len(fields) >= 4 && fields[3] != "-" {
			dev.Serial = fields[3]
		}
		devices = append(devices, dev)
	}
	return devices
}

func firstField(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			return f[0]
		}
	}
	return ""
}
