package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	probesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warden",
		Name:      "probes_total",
		Help:      "Total number of process-table probes per helper and outcome.",
	}, []string{"helper", "outcome"})

	terminationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warden",
		Name:      "terminations_total",
		Help:      "Total number of dispatched termination attempts per helper and signal.",
	}, []string{"helper", "signal"})

	escalationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warden",
		Name:      "escalations_total",
		Help:      "Total number of graceful terminations that escalated to a forced signal.",
	}, []string{"helper"})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "warden",
		Name:      "build_info",
		Help:      "Build metadata for the running warden binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(probesTotal, terminationsTotal, escalationsTotal, buildInfo)
}

// Registry returns the Prometheus registry containing all warden metrics.
func Registry() *prometheus.Registry {
	return registry
}

// ObserveProbe records the outcome of a single process-table probe.
func ObserveProbe(helper string, running bool) {
	if helper == "" {
		return
	}
	outcome := "stopped"
	if running {
		outcome = "running"
	}
	probesTotal.WithLabelValues(helper, outcome).Inc()
}

// ObserveTermination records a dispatched termination attempt.
func ObserveTermination(helper string, force bool) {
	if helper == "" {
		return
	}
	signal := "term"
	if force {
		signal = "kill"
	}
	terminationsTotal.WithLabelValues(helper, signal).Inc()
}

// IncrementEscalation records a graceful-to-forced escalation for a helper.
func IncrementEscalation(helper string) {
	if helper == "" {
		return
	}
	escalationsTotal.WithLabelValues(helper).Inc()
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
