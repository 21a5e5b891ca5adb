package probe

import (
	"context"
	"encoding/json"

	"nvme-validator/internal/utils"
	"nvme-validator/pkg/types"

	"github.com/cockroachdb/errors"
)

// SmartCtlProbe reads SMART health data via smartctl
type SmartCtlProbe struct{}

// NewSmartCtlProbe creates a new SmartCtlProbe instance
func NewSmartCtlProbe() *SmartCtlProbe {
	return &SmartCtlProbe{}
}

// Health returns the SMART fields used for classification.
// smartctl exits non-zero when the drive is failing, so the output is
// parsed whenever JSON is present regardless of exit status.
func (s *SmartCtlProbe) Health(ctx context.Context, dev types.Device) (types.SmartHealth, error) {
	if !utils.CommandExists("smartctl") {
		return types.SmartHealth{}, errors.New("smartctl is not available")
	}

	output, err := utils.RunCommand(ctx, "smartctl", "-a", "-j", dev.Path)
	if err != nil && len(output) == 0 {
		return types.SmartHealth{}, err
	}

	return parseSmartHealth(output)
}

// parseSmartHealth extracts the validated fields from smartctl JSON
func parseSmartHealth(output []byte) (types.SmartHealth, error) {
	var data types.SmartCtlOutput
	if err := json.Unmarshal(output, &data); err != nil {
		return types.SmartHealth{}, errors.Wrap(err, "parsing smartctl JSON")
	}

	var health types.SmartHealth
	if data.SmartStatus != nil {
		if data.SmartStatus.Passed {
			health.SelfAssessment = "PASSED"
		} else {
			health.SelfAssessment = "FAILED"
		}
	}

	if nvme := data.NvmeSmartHealthInformationLog; nvme != nil {
		health.CriticalWarning = nvme.CriticalWarning
		health.Temperature = nvme.Temperature
		health.MediaErrors = nvme.MediaErrors
	}

	return health, nil
}
