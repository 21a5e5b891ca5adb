package types

// SmartCtlOutput represents the subset of smartctl -a -j output the
// validator consumes. Pointer fields distinguish a missing JSON key
// from a legitimate zero value.
type SmartCtlOutput struct {
	Device struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Protocol string `json:"protocol"`
	} `json:"device"`
	SerialNumber string `json:"serial_number"`
	ModelName    string `json:"model_name"`
	UserCapacity struct {
		Bytes int64 `json:"bytes"`
	} `json:"user_capacity"`
	SmartStatus *struct {
		Passed bool `json:"passed"`
	} `json:"smart_status"`
	NvmeSmartHealthInformationLog *struct {
		CriticalWarning *int     `json:"critical_warning"`
		Temperature     *float64 `json:"temperature"`
		MediaErrors     *int64   `json:"media_errors"`
	} `json:"nvme_smart_health_information_log"`
}

// NvmeListOutput represents nvme list -o json output
type NvmeListOutput struct {
	Devices []struct {
		DevicePath   string `json:"DevicePath"`
		ModelNumber  string `json:"ModelNumber"`
		SerialNumber string `json:"SerialNumber"`
		PhysicalSize int64  `json:"PhysicalSize"`
	} `json:"Devices"`
}

// FioOutput represents fio --output-format=json output
type FioOutput struct {
	Jobs []FioJob `json:"jobs"`
}

// FioJob is one job block in fio JSON output
type FioJob struct {
	JobName string   `json:"jobname"`
	Error   int64    `json:"error"`
	Read    FioStats `json:"read"`
	Write   FioStats `json:"write"`
}

// FioStats holds per-direction throughput and latency numbers
type FioStats struct {
	BW     int64   `json:"bw"` // KiB/s
	IOPS   float64 `json:"iops"`
	ClatNs struct {
		Percentile map[string]float64 `json:"percentile"`
	} `json:"clat_ns"`
}

// LatencyP99us returns the 99th percentile completion latency in
// microseconds, or 0 when fio did not report percentiles.
func (s FioStats) LatencyP99us() float64 {
	if v, ok := s.ClatNs.Percentile["99.000000"]; ok {
		return v / 1000.0
	}
	return 0
}
