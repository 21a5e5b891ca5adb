package system

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const dmiPath = "/sys/class/dmi/id"

// Identity holds detected environment identity facts. These are
// consumed only for header rendering, never for classification.
type Identity struct {
	ProductName   string
	BoardName     string
	BIOSVersion   string
	BMCVersion    string
	SerialNumber  string
	OSDescription string
	KernelVersion string
	Hostname      string
}

// Detector handles environment identity detection
type Detector struct {
	identity *Identity
}

// New creates a new identity detector
func New() *Detector {
	return &Detector{}
}

// Detect performs one-time identity detection
func (d *Detector) Detect() *Identity {
	if d.identity != nil {
		return d.identity // Return cached identity if already detected
	}

	log.Println("Collecting environment identity...")

	id := &Identity{
		ProductName:  readDMI("product_name"),
		BoardName:    readDMI("board_name"),
		BIOSVersion:  readDMI("bios_version"),
		SerialNumber: readDMI("product_serial"),
	}

	id.OSDescription = readOSRelease()
	id.KernelVersion = kernelVersion()
	id.BMCVersion = bmcVersion()

	if hostname, err := os.Hostname(); err == nil {
		id.Hostname = hostname
	} else {
		id.Hostname = "unknown"
	}

	d.identity = id
	return id
}

// readDMI reads one attribute from the DMI sysfs tree
func readDMI(name string) string {
	data, err := os.ReadFile(filepath.Join(dmiPath, name))
	if err != nil {
		return "unknown"
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "unknown"
	}
	return value
}

// readOSRelease extracts PRETTY_NAME from /etc/os-release
func readOSRelease() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return runtime.GOOS
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), `"`)
		}
	}
	return runtime.GOOS
}

// kernelVersion returns the running kernel release
func kernelVersion() string {
	output, err := exec.Command("uname", "-r").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// bmcVersion returns the BMC firmware version via ipmitool, if present
func bmcVersion() string {
	if _, err := exec.LookPath("ipmitool"); err != nil {
		return "unavailable"
	}

	output, err := exec.Command("ipmitool", "mc", "info").Output()
	if err != nil {
		log.Printf("Error querying BMC info: %v", err)
		return "unavailable"
	}

	for _, line := range strings.Split(string(output), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Firmware Revision") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[1])
			}
		}
	}
	return "unavailable"
}
