package probe

import (
	"context"
	"regexp"
	"strings"

	"nvme-validator/internal/utils"
	"nvme-validator/pkg/types"

	"github.com/cockroachdb/errors"
)

// logPatterns maps each scan class to the kernel-log line shapes it
// counts.
var logPatterns = map[types.LogPattern]*regexp.Regexp{
	types.PatternIOError:  regexp.MustCompile(`(?i)(blk_update_request: i/o error|buffer i/o error|i/o error, dev)`),
	types.PatternLinkDown: regexp.MustCompile(`(?i)(link (is )?down|nvme nvme\d+: resetting controller)`),
}

// DmesgProbe scans the kernel ring buffer via dmesg
type DmesgProbe struct{}

// NewDmesgProbe creates a new DmesgProbe instance
func NewDmesgProbe() *DmesgProbe {
	return &DmesgProbe{}
}

// ResetBuffer clears the kernel ring buffer so that subsequent scans
// only see messages generated by this run's own I/O load
func (d *DmesgProbe) ResetBuffer(ctx context.Context) error {
	_, err := utils.RunCommand(ctx, "dmesg", "--clear")
	return err
}

// CountPattern counts ring buffer lines matching a pattern class
func (d *DmesgProbe) CountPattern(ctx context.Context, pattern types.LogPattern) (int, error) {
	re, ok := logPatterns[pattern]
	if !ok {
		return 0, errors.Newf("unknown log pattern class %q", pattern)
	}

	output, err := utils.RunCommand(ctx, "dmesg")
	if err != nil {
		return 0, err
	}

	return countMatches(output, re), nil
}

// countMatches counts the lines of output matching re
func countMatches(output []byte, re *regexp.Regexp) int {
	count := 0
	for _, line := range strings.Split(string(output), "\n") {
		if re.MatchString(line) {
			count++
		}
	}
	return count
}
