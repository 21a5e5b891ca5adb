package report

import (
	"fmt"
	"strings"
	"time"

	"nvme-validator/internal/system"
)

// frameWidth is the total width of framed header and summary blocks
const frameWidth = 70

// RenderHeader formats the environment identity block written at the
// top of the run log
func RenderHeader(id *system.Identity) string {
	var b strings.Builder

	b.WriteString(frameTitle("NVMe VALIDATION REPORT"))
	fmt.Fprintf(&b, "Product      : %s\n", id.ProductName)
	fmt.Fprintf(&b, "Board        : %s\n", id.BoardName)
	fmt.Fprintf(&b, "BIOS Version : %s\n", id.BIOSVersion)
	fmt.Fprintf(&b, "BMC Version  : %s\n", id.BMCVersion)
	fmt.Fprintf(&b, "Serial       : %s\n", id.SerialNumber)
	fmt.Fprintf(&b, "OS           : %s\n", id.OSDescription)
	fmt.Fprintf(&b, "Kernel       : %s\n", id.KernelVersion)
	fmt.Fprintf(&b, "Hostname     : %s\n", id.Hostname)
	b.WriteString(strings.Repeat("=", frameWidth) + "\n")

	return b.String()
}

// RenderSummary formats the run summary block from a finalized snapshot
func RenderSummary(s Snapshot) string {
	var b strings.Builder

	b.WriteString(frameTitle("VALIDATION SUMMARY"))
	fmt.Fprintf(&b, "Total Checks : %d\n", s.Total)
	fmt.Fprintf(&b, "Passed       : %d\n", s.Passed)
	fmt.Fprintf(&b, "Failed       : %d\n", s.Failed)
	fmt.Fprintf(&b, "Warnings     : %d\n", s.Warnings)
	if !s.EndTime.IsZero() {
		fmt.Fprintf(&b, "Elapsed      : %s\n", s.EndTime.Sub(s.StartTime).Round(time.Second))
	}
	fmt.Fprintf(&b, "Overall      : %s\n", s.Overall)
	b.WriteString(strings.Repeat("=", frameWidth) + "\n")

	return b.String()
}

// frameTitle renders a title centered over the fixed frame width
func frameTitle(title string) string {
	pad := (frameWidth - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("=", frameWidth) + "\n" +
		strings.Repeat(" ", pad) + title + "\n" +
		strings.Repeat("=", frameWidth) + "\n"
}
