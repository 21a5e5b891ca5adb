package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"nvme-validator/pkg/types"
)

// Metrics holds all Prometheus metrics exposed while a run executes
type Metrics struct {
	CheckEntries       *prometheus.CounterVec
	DeviceTemperature  *prometheus.GaugeVec
	BenchBandwidthKBps *prometheus.GaugeVec
	BenchIOPS          *prometheus.GaugeVec
	ValidatorUp        prometheus.Gauge
}

// New creates and registers all metrics
func New() *Metrics {
	m := &Metrics{
		CheckEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nvme_validator_check_entries_total",
				Help: "Classified validation entries by severity and module",
			},
			[]string{"severity", "module"},
		),
		DeviceTemperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nvme_validator_device_temperature_celsius",
				Help: "Composite NVMe temperature in Celsius",
			},
			[]string{"device", "serial", "model"},
		),
		BenchBandwidthKBps: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nvme_validator_bench_bandwidth_kbps",
				Help: "Benchmark bandwidth per device and profile in KiB/s",
			},
			[]string{"device", "profile"},
		),
		BenchIOPS: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nvme_validator_bench_iops",
				Help: "Benchmark IOPS per device and profile",
			},
			[]string{"device", "profile"},
		),
		ValidatorUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "nvme_validator_up",
				Help: "Whether a validation run is currently executing",
			},
		),
	}

	// Register all metrics
	prometheus.MustRegister(
		m.CheckEntries,
		m.DeviceTemperature,
		m.BenchBandwidthKBps,
		m.BenchIOPS,
		m.ValidatorUp,
	)

	return m
}

// Write counts a recorded entry. Metrics acts as a recorder sink so
// every classified entry is observable mid-run.
func (m *Metrics) Write(entry types.Entry) {
	m.CheckEntries.WithLabelValues(string(entry.Severity), entry.Module).Inc()
}

// ObserveTemperature records a device's composite temperature
func (m *Metrics) ObserveTemperature(dev types.Device, celsius float64) {
	m.DeviceTemperature.WithLabelValues(dev.Path, dev.Serial, dev.Model).Set(celsius)
}

// ObserveBench records one profile's benchmark numbers for a device
func (m *Metrics) ObserveBench(dev types.Device, profile string, result types.BenchResult) {
	m.BenchBandwidthKBps.WithLabelValues(dev.Path, profile).Set(float64(result.BandwidthKBps))
	m.BenchIOPS.WithLabelValues(dev.Path, profile).Set(result.IOPS)
}
