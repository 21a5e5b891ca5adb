package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"nvme-validator/internal/check"
	"nvme-validator/internal/config"
	"nvme-validator/internal/metrics"
	"nvme-validator/internal/probe"
	"nvme-validator/internal/report"
	"nvme-validator/internal/system"
	"nvme-validator/pkg/types"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// Build-time variables (set via -ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// exitCode distinguishes a failed validation (1) from an environment
// error (2, via Execute error) and a clean pass (0)
var exitCode int

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		logDir     string
		listenAddr string
	)

	cmd := &cobra.Command{
		Use:   "nvme-validator",
		Short: "Run a validation battery against the host's NVMe devices",
		Long: `nvme-validator runs a fixed battery of checks against the NVMe devices
attached to this host: PCIe link state, synthetic I/O benchmarks, SMART
health and a kernel-log error scan. Every outcome is classified and
written to the console and to an append-only run log. The process exits
0 when the run passes and 1 when any check fails.`,
		Version:      fmt.Sprintf("%s (%s, built %s)", version, commit, buildTime),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile, logDir, listenAddr)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for the run log (overrides LOG_DIR)")
	cmd.Flags().StringVar(&listenAddr, "listen", "", "serve /metrics and /health on this address during the run")

	return cmd
}

func run(configFile, logDir, listenAddr string) error {
	if os.Geteuid() != 0 {
		return errors.New("nvme-validator must run as root to access devices and the kernel log")
	}

	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return err
		}
	}
	if logDir != "" {
		cfg.LogDir = logDir
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating log directory %s", cfg.LogDir)
	}

	logPath := filepath.Join(cfg.LogDir, fmt.Sprintf("nvme-validate-%s.log", time.Now().Format("20060102-150405")))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "creating log file %s", logPath)
	}
	defer logFile.Close()

	identity := system.New().Detect()
	header := report.RenderHeader(identity)
	fmt.Print(header)
	fmt.Fprint(logFile, header)

	sinks := []report.Sink{report.NewConsoleSink(), report.NewFileSink(logFile)}

	var m *metrics.Metrics
	if cfg.ListenAddr != "" {
		m = metrics.New()
		m.ValidatorUp.Set(1)
		sinks = append(sinks, m)
		go serveMetrics(cfg.ListenAddr)
	}

	recorder := report.NewRecorder(sinks...)
	orchestrator := check.New(cfg, logPath,
		probe.NewNvmeInventory(),
		probe.NewSysfsLinkProbe(),
		probe.NewSmartCtlProbe(),
		probe.NewFioProbe(),
		probe.NewDmesgProbe(),
		recorder, m)

	// SIGINT/SIGTERM lets the in-flight check finish and still
	// renders the summary from partial results
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshot := orchestrator.Run(ctx)
	if m != nil {
		m.ValidatorUp.Set(0)
	}

	summary := report.RenderSummary(snapshot)
	fmt.Print(summary)
	fmt.Fprint(logFile, summary)

	if snapshot.Overall == types.SeverityFail {
		exitCode = 1
	}
	return nil
}

// serveMetrics exposes run metrics for scraping while long benchmark
// profiles execute
func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"nvme-validator"}`)
	})

	log.Printf("Serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Printf("Metrics server error: %v", err)
	}
}
