package probe

import (
	"testing"
)

func TestNvmeInventory_Interface(t *testing.T) {
	inv := NewNvmeInventory()
	if inv == nil {
		t.Fatal("NewNvmeInventory returned nil")
	}

	// Verify that NvmeInventory implements Inventory
	var _ Inventory = inv
}

func TestParseNvmeList(t *testing.T) {
	output := []byte(`{
  "Devices": [
    {
      "DevicePath": "/dev/nvme0n1",
      "ModelNumber": "SAMSUNG MZQL23T8HCLS-00A07",
      "SerialNumber": "S64HNE0R123456",
      "PhysicalSize": 3840755982336
    },
    {
      "DevicePath": "/dev/nvme1n1",
      "ModelNumber": "INTEL SSDPF2KX038TZ",
      "SerialNumber": "PHAC1234567890",
      "PhysicalSize": 3840755982336
    }
  ]
}`)

	devices, err := parseNvmeList(output)
	if err != nil {
		t.Fatalf("parseNvmeList returned error: %v", err)
	}

	if len(devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devices))
	}

	first := devices[0]
	if first.Path != "/dev/nvme0n1" {
		t.Errorf("Expected path /dev/nvme0n1, got %s", first.Path)
	}
	if first.Model != "SAMSUNG MZQL23T8HCLS-00A07" {
		t.Errorf("Unexpected model %q", first.Model)
	}
	if first.Serial != "S64HNE0R123456" {
		t.Errorf("Unexpected serial %q", first.Serial)
	}
	if first.SizeBytes != 3840755982336 {
		t.Errorf("Unexpected size %d", first.SizeBytes)
	}
}

func TestParseNvmeListEmpty(t *testing.T) {
	devices, err := parseNvmeList([]byte(`{"Devices": []}`))
	if err != nil {
		t.Fatalf("parseNvmeList returned error: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("Expected no devices, got %d", len(devices))
	}
}

func TestParseNvmeListInvalid(t *testing.T) {
	if _, err := parseNvmeList([]byte("not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestParseLsblkList(t *testing.T) {
	output := []byte(`nvme0n1 3840755982336 SAMSUNG_MZQL23T8 S64HNE0R123456
sda 480103981056 SomeSataDisk WXYZ
nvme1n1 3840755982336 - -
`)

	devices := parseLsblkList(output)
	if len(devices) != 2 {
		t.Fatalf("Expected 2 NVMe devices, got %d", len(devices))
	}

	if devices[0].Path != "/dev/nvme0n1" || devices[0].Serial != "S64HNE0R123456" {
		t.Errorf("Unexpected first device: %+v", devices[0])
	}

	// Dashes mean lsblk had no value
	if devices[1].Model != "" || devices[1].Serial != "" {
		t.Errorf("Expected empty model/serial for nvme1n1, got %+v", devices[1])
	}
}

func TestFirstField(t *testing.T) {
	if got := firstField("\nnvme0n1\n"); got != "nvme0n1" {
		t.Errorf("Expected nvme0n1, got %q", got)
	}
	if got := firstField("  \n  \n"); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
