package check

import (
	"fmt"

	"nvme-validator/pkg/types"
)

// Outcome is one classified result produced by the evaluator
type Outcome struct {
	Severity types.Severity
	Message  string
}

// EvaluateLinkWidth classifies a device's negotiated PCIe link width
// against its maximum. A degraded width is a warning, not a failure.
func EvaluateLinkWidth(dev types.Device, state types.LinkState) Outcome {
	if state.CurrentWidth == nil || state.MaxWidth == nil {
		return Outcome{types.SeverityWarn, fmt.Sprintf("%s: link width unavailable", dev.Name())}
	}
	if *state.CurrentWidth != *state.MaxWidth {
		return Outcome{types.SeverityWarn, fmt.Sprintf("%s: link width x%d below maximum x%d", dev.Name(), *state.CurrentWidth, *state.MaxWidth)}
	}
	return Outcome{types.SeverityInfo, fmt.Sprintf("%s: link width x%d at maximum", dev.Name(), *state.CurrentWidth)}
}

// EvaluateLinkSpeed classifies a device's negotiated PCIe link speed
// against its maximum
func EvaluateLinkSpeed(dev types.Device, state types.LinkState) Outcome {
	if state.CurrentSpeed == nil || state.MaxSpeed == nil {
		return Outcome{types.SeverityWarn, fmt.Sprintf("%s: link speed unavailable", dev.Name())}
	}
	if *state.CurrentSpeed != *state.MaxSpeed {
		return Outcome{types.SeverityWarn, fmt.Sprintf("%s: link speed %s below maximum %s", dev.Name(), *state.CurrentSpeed, *state.MaxSpeed)}
	}
	return Outcome{types.SeverityInfo, fmt.Sprintf("%s: link speed %s at maximum", dev.Name(), *state.CurrentSpeed)}
}

// EvaluateSelfAssessment classifies the SMART overall self-assessment.
// Missing data is a failure, never a silent pass.
func EvaluateSelfAssessment(dev types.Device, health types.SmartHealth) Outcome {
	switch health.SelfAssessment {
	case "":
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: SMART self-assessment unavailable", dev.Name())}
	case "PASSED":
		return Outcome{types.SeverityPass, fmt.Sprintf("%s: SMART self-assessment PASSED", dev.Name())}
	default:
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: SMART self-assessment %s", dev.Name(), health.SelfAssessment)}
	}
}

// EvaluateCriticalWarning classifies the NVMe critical warning byte
func EvaluateCriticalWarning(dev types.Device, health types.SmartHealth) Outcome {
	if health.CriticalWarning == nil {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: critical warning unavailable", dev.Name())}
	}
	if *health.CriticalWarning != 0 {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: critical warning 0x%02x, drive should be replaced", dev.Name(), *health.CriticalWarning)}
	}
	return Outcome{types.SeverityPass, fmt.Sprintf("%s: critical warning 0x00", dev.Name())}
}

// EvaluateTemperature classifies the composite temperature against the
// limit. The boundary is inclusive: a reading at the limit fails.
func EvaluateTemperature(dev types.Device, health types.SmartHealth, limit float64) Outcome {
	if health.Temperature == nil {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: composite temperature unavailable", dev.Name())}
	}
	if *health.Temperature >= limit {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: temperature %.0f C at or above limit %.0f C", dev.Name(), *health.Temperature, limit)}
	}
	return Outcome{types.SeverityPass, fmt.Sprintf("%s: temperature %.0f C below limit %.0f C", dev.Name(), *health.Temperature, limit)}
}

// EvaluateMediaErrors classifies the media and data integrity error count
func EvaluateMediaErrors(dev types.Device, health types.SmartHealth) Outcome {
	if health.MediaErrors == nil {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: media error count unavailable", dev.Name())}
	}
	if *health.MediaErrors != 0 {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: %d media errors", dev.Name(), *health.MediaErrors)}
	}
	return Outcome{types.SeverityPass, fmt.Sprintf("%s: no media errors", dev.Name())}
}

// EvaluateBenchmark classifies one benchmark profile's outcome. A
// failed or missing result fails the check naming the profile.
func EvaluateBenchmark(dev types.Device, profile types.BenchProfile, result *types.BenchResult, err error) Outcome {
	if err != nil {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: profile %s failed: %v", dev.Name(), profile.Name, err)}
	}
	if result == nil {
		return Outcome{types.SeverityFail, fmt.Sprintf("%s: profile %s produced no result", dev.Name(), profile.Name)}
	}
	return Outcome{types.SeverityPass, fmt.Sprintf("%s: %s %.1f MB/s, %.0f IOPS, p99 %.2f ms, %d errors",
		dev.Name(), profile.Name, float64(result.BandwidthKBps)/1024.0, result.IOPS, result.LatencyP99us/1000.0, result.ErrorCount)}
}

// EvaluateKernelLog classifies the occurrence count of one kernel-log
// pattern class
func EvaluateKernelLog(pattern types.LogPattern, count int, err error) Outcome {
	if err != nil {
		return Outcome{types.SeverityFail, fmt.Sprintf("kernel log scan for %s unavailable: %v", pattern, err)}
	}
	if count != 0 {
		return Outcome{types.SeverityFail, fmt.Sprintf("%d %s entries in kernel log", count, pattern)}
	}
	return Outcome{types.SeverityPass, fmt.Sprintf("no %s entries in kernel log", pattern)}
}
