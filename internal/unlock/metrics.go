package unlock

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	reveals  *prometheus.CounterVec
	commands *prometheus.CounterVec
	stored   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reveals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unlock_reveals_total",
				Help: "Reveal button presses by outcome",
			},
			[]string{"outcome"}, // rendered|denied|not_found|error
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unlock_commands_total",
				Help: "Commands handled by result",
			},
			[]string{"command", "result"}, // ok|invalid|throttled|error
		),
		stored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unlock_secrets_stored_total",
				Help: "Payloads written to the secret store",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.reveals, m.commands, m.stored)
	return m
}
