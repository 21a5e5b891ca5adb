package check

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"nvme-validator/internal/config"
	"nvme-validator/internal/metrics"
	"nvme-validator/internal/probe"
	"nvme-validator/internal/report"
	"nvme-validator/internal/utils"
	"nvme-validator/pkg/types"
)

// Module names used for entry attribution
const (
	ModuleEnvironment = "environment"
	ModuleInventory   = "inventory"
	ModuleLink        = "link"
	ModuleBench       = "bench"
	ModuleHealth      = "health"
	ModuleKernelLog   = "kernel-log"
)

// maxProbeFanout bounds concurrent link/health probes across devices
const maxProbeFanout = 4

// Orchestrator sequences the validation checks over the device
// inventory, feeding classified entries to the run recorder
type Orchestrator struct {
	cfg       *config.Config
	logFile   string
	inventory probe.Inventory
	link      probe.LinkProbe
	health    probe.HealthProbe
	bench     probe.BenchProbe
	kernelLog probe.KernelLogProbe
	recorder  *report.Recorder
	metrics   *metrics.Metrics

	bufferReset bool
	cancelled   bool
}

// New creates an orchestrator. metrics may be nil when the metrics
// listener is disabled.
func New(cfg *config.Config, logFile string, inventory probe.Inventory, link probe.LinkProbe,
	health probe.HealthProbe, bench probe.BenchProbe, kernelLog probe.KernelLogProbe,
	recorder *report.Recorder, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		logFile:   logFile,
		inventory: inventory,
		link:      link,
		health:    health,
		bench:     bench,
		kernelLog: kernelLog,
		recorder:  recorder,
		metrics:   m,
	}
}

// Run executes the full check pipeline and returns the final
// snapshot. A failed check never aborts the remaining checks; only an
// empty inventory or cancellation ends the run early, and the summary
// reflects whatever completed.
func (o *Orchestrator) Run(ctx context.Context) report.Snapshot {
	o.checkEnvironment()

	devices, ok := o.enumerate(ctx)
	if !ok {
		return o.recorder.Finalize()
	}

	rootDev, rootOK := o.resolveRoot(ctx)

	o.runLinkChecks(ctx, devices)

	if o.runCancelled(ctx) {
		return o.recorder.Finalize()
	}

	o.runBenchChecks(ctx, devices, rootDev, rootOK)

	if o.runCancelled(ctx) {
		return o.recorder.Finalize()
	}

	o.runHealthChecks(ctx, devices)

	if o.runCancelled(ctx) {
		return o.recorder.Finalize()
	}

	o.runKernelLogScan(ctx)

	return o.recorder.Finalize()
}

// checkEnvironment records the log destination and the presence of
// the external tools the probes shell out to
func (o *Orchestrator) checkEnvironment() {
	o.recorder.Record(types.SeverityInfo, ModuleEnvironment, fmt.Sprintf("logging to %s", o.logFile))

	for _, tool := range []struct {
		name        string
		versionFlag string
	}{
		{"nvme", "version"},
		{"smartctl", "--version"},
		{"fio", "--version"},
		{"dmesg", "--version"},
	} {
		if !utils.CommandExists(tool.name) {
			o.recorder.Record(types.SeverityWarn, ModuleEnvironment, fmt.Sprintf("%s not found, dependent checks will fail", tool.name))
			continue
		}
		version, err := utils.GetToolVersion(tool.name, tool.versionFlag)
		if err != nil || version == "" {
			version = "unknown version"
		}
		o.recorder.Record(types.SeverityInfo, ModuleEnvironment, fmt.Sprintf("%s found (%s)", tool.name, version))
	}
}

// enumerate lists the device inventory. An empty or failed inventory
// is a single FAIL and ends the run.
func (o *Orchestrator) enumerate(ctx context.Context) ([]types.Device, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, o.cfg.ProbeTimeout)
	defer cancel()

	devices, err := o.inventory.ListDevices(probeCtx)
	if err != nil {
		o.recorder.Record(types.SeverityFail, ModuleInventory, fmt.Sprintf("device enumeration failed: %v", err))
		return nil, false
	}
	if len(devices) == 0 {
		o.recorder.Record(types.SeverityFail, ModuleInventory, "no eligible NVMe devices found")
		return nil, false
	}

	for _, dev := range devices {
		o.recorder.Record(types.SeverityInfo, ModuleInventory,
			fmt.Sprintf("%s: %s SN %s (%s)", dev.Name(), dev.Model, dev.Serial, utils.FormatBytes(dev.SizeBytes)))
	}
	return devices, true
}

// resolveRoot resolves the block device backing the root filesystem.
// Without it the destructive benchmark cannot safely run.
func (o *Orchestrator) resolveRoot(ctx context.Context) (string, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, o.cfg.ProbeTimeout)
	defer cancel()

	rootDev, err := o.inventory.RootBackingDevice(probeCtx)
	if err != nil {
		o.recorder.Record(types.SeverityFail, ModuleBench,
			fmt.Sprintf("cannot resolve root backing device: %v, benchmark skipped", err))
		return "", false
	}
	return rootDev, true
}

// runLinkChecks probes PCIe link state per device. Devices are
// independent here, so probes fan out concurrently.
func (o *Orchestrator) runLinkChecks(ctx context.Context, devices []types.Device) {
	var g errgroup.Group
	g.SetLimit(maxProbeFanout)

	for _, dev := range devices {
		dev := dev
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, o.cfg.ProbeTimeout)
			defer cancel()

			state, err := o.link.LinkState(probeCtx, dev)
			if err != nil {
				o.recorder.Record(types.SeverityFail, ModuleLink, fmt.Sprintf("%s: link state unavailable: %v", dev.Name(), err))
				return nil
			}

			o.record(ModuleLink, EvaluateLinkWidth(dev, state))
			o.record(ModuleLink, EvaluateLinkSpeed(dev, state))
			return nil
		})
	}
	g.Wait()
}

// runBenchChecks runs the fixed I/O profiles per non-root device.
// The kernel ring buffer is reset exactly once, immediately before
// the first I/O load, so the later scan only sees this run's errors.
// Benchmarks stay strictly sequential: concurrent jobs on a shared
// bus would invalidate each other's numbers.
func (o *Orchestrator) runBenchChecks(ctx context.Context, devices []types.Device, rootDev string, rootOK bool) {
	if !rootOK {
		return
	}

	resetCtx, cancel := context.WithTimeout(ctx, o.cfg.ProbeTimeout)
	err := o.kernelLog.ResetBuffer(resetCtx)
	cancel()
	if err != nil {
		o.recorder.Record(types.SeverityFail, ModuleKernelLog, fmt.Sprintf("kernel buffer reset failed: %v", err))
	} else {
		o.bufferReset = true
	}

	for _, dev := range devices {
		if dev.Name() == rootDev {
			o.recorder.Record(types.SeverityInfo, ModuleBench,
				fmt.Sprintf("%s: hosts the root filesystem, benchmark skipped", dev.Name()))
			continue
		}

		for _, profile := range o.cfg.Profiles {
			if ctx.Err() != nil {
				return
			}

			log.Printf("Running %s on %s (%s)...", profile.Name, dev.Name(), profile.Duration)
			result, err := o.bench.RunProfile(ctx, dev, profile)

			if err != nil {
				o.record(ModuleBench, EvaluateBenchmark(dev, profile, nil, err))
				continue
			}

			o.record(ModuleBench, EvaluateBenchmark(dev, profile, &result, nil))
			if o.metrics != nil {
				o.metrics.ObserveBench(dev, profile.Name, result)
			}
		}
	}
}

// runHealthChecks probes SMART data per device and classifies the
// four health rules
func (o *Orchestrator) runHealthChecks(ctx context.Context, devices []types.Device) {
	var g errgroup.Group
	g.SetLimit(maxProbeFanout)

	for _, dev := range devices {
		dev := dev
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, o.cfg.ProbeTimeout)
			defer cancel()

			health, err := o.health.Health(probeCtx, dev)
			if err != nil {
				o.recorder.Record(types.SeverityFail, ModuleHealth, fmt.Sprintf("%s: SMART data unavailable: %v", dev.Name(), err))
				return nil
			}

			o.record(ModuleHealth, EvaluateSelfAssessment(dev, health))
			o.record(ModuleHealth, EvaluateCriticalWarning(dev, health))
			o.record(ModuleHealth, EvaluateTemperature(dev, health, o.cfg.TemperatureLimit))
			o.record(ModuleHealth, EvaluateMediaErrors(dev, health))

			if o.metrics != nil && health.Temperature != nil {
				o.metrics.ObserveTemperature(dev, *health.Temperature)
			}
			return nil
		})
	}
	g.Wait()
}

// runKernelLogScan counts error patterns accumulated since the
// pre-benchmark buffer reset
func (o *Orchestrator) runKernelLogScan(ctx context.Context) {
	if !o.bufferReset {
		o.recorder.Record(types.SeverityWarn, ModuleKernelLog, "scan skipped, buffer was not reset before benchmark load")
		return
	}

	for _, pattern := range []types.LogPattern{types.PatternIOError, types.PatternLinkDown} {
		probeCtx, cancel := context.WithTimeout(ctx, o.cfg.ProbeTimeout)
		count, err := o.kernelLog.CountPattern(probeCtx, pattern)
		cancel()

		o.record(ModuleKernelLog, EvaluateKernelLog(pattern, count, err))
	}
}

// runCancelled reports whether the run context was cancelled,
// recording the interruption once
func (o *Orchestrator) runCancelled(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	if !o.cancelled {
		o.cancelled = true
		o.recorder.Record(types.SeverityWarn, ModuleEnvironment, "run cancelled, remaining checks skipped")
	}
	return true
}

// record forwards one evaluator outcome to the recorder
func (o *Orchestrator) record(module string, outcome Outcome) {
	o.recorder.Record(outcome.Severity, module, outcome.Message)
}
