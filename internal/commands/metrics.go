package commands

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the collectors shared by every command handler.
type Metrics struct {
	Executions *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics builds the command collectors and registers them with reg when
// non-nil.
func NewMetrics(reg prometheus.Registerer) Metrics {
	m := Metrics{
		Executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guide_command_executions_total",
			Help: "Command executions by message type and outcome.",
		}, []string{"command", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "guide_command_duration_seconds",
			Help:    "Command execution latency by message type.",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
	}
	if reg != nil {
		reg.MustRegister(m.Executions, m.Duration)
	}
	return m
}
