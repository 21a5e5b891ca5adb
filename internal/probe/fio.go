package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nvme-validator/internal/utils"
	"nvme-validator/pkg/types"

	"github.com/cockroachdb/errors"
)

// fioGracePeriod covers fio setup and teardown beyond the profile's
// declared runtime budget.
const fioGracePeriod = 30 * time.Second

// FioProbe runs synthetic I/O workloads via fio
type FioProbe struct{}

// NewFioProbe creates a new FioProbe instance
func NewFioProbe() *FioProbe {
	return &FioProbe{}
}

// RunProfile runs one fio profile against the raw device and returns
// its aggregate throughput and latency numbers
func (f *FioProbe) RunProfile(ctx context.Context, dev types.Device, profile types.BenchProfile) (types.BenchResult, error) {
	if !utils.CommandExists("fio") {
		return types.BenchResult{}, errors.New("fio is not available")
	}

	runtimeSec := int(profile.Duration.Seconds())
	if runtimeSec <= 0 {
		runtimeSec = 60
	}

	args := []string{
		"--name=" + profile.Name,
		"--filename=" + dev.Path,
		"--rw=" + profile.Mode,
		"--bs=" + profile.BlockSize,
		fmt.Sprintf("--numjobs=%d", profile.Jobs),
		fmt.Sprintf("--iodepth=%d", profile.QueueDepth),
		fmt.Sprintf("--runtime=%d", runtimeSec),
		"--time_based",
		"--direct=1",
		"--ioengine=libaio",
		"--group_reporting",
		"--output-format=json",
	}

	ctx, cancel := context.WithTimeout(ctx, profile.Duration+fioGracePeriod)
	defer cancel()

	output, err := utils.RunCommand(ctx, "fio", args...)
	if err != nil {
		return types.BenchResult{}, err
	}

	return parseFioResult(output, profile.Mode)
}

// parseFioResult extracts the aggregate numbers for the profile's I/O
// direction from fio JSON output
func parseFioResult(output []byte, mode string) (types.BenchResult, error) {
	var data types.FioOutput
	if err := json.Unmarshal(output, &data); err != nil {
		return types.BenchResult{}, errors.Wrap(err, "parsing fio JSON")
	}

	if len(data.Jobs) == 0 {
		return types.BenchResult{}, errors.New("fio reported no jobs")
	}

	job := data.Jobs[0]
	stats := job.Read
	if mode == "write" || mode == "randwrite" {
		stats = job.Write
	}

	return types.BenchResult{
		BandwidthKBps: stats.BW,
		IOPS:          stats.IOPS,
		LatencyP99us:  stats.LatencyP99us(),
		ErrorCount:    job.Error,
	}, nil
}
