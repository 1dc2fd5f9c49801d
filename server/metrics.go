package server

import (
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server counters.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	adminOps    *prometheus.CounterVec
}

// NewMetrics registers the server counters on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "license_validations_total",
			Help: "Validation requests by outcome reason (\"valid\" for accepted requests).",
		}, []string{"reason"}),
		adminOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "license_admin_operations_total",
			Help: "Admin operations by operation and result.",
		}, []string{"operation", "result"}),
	}

	reg.MustRegister(m.validations, m.adminOps)

	return m
}

func (m *Metrics) observeValidation(result model.ValidationResult) {
	reason := string(result.Reason)
	if result.Valid {
		reason = "valid"
	}

	m.validations.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeAdmin(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.adminOps.WithLabelValues(operation, result).Inc()
}
