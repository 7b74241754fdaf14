package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operations records per-component operation outcomes.
type Operations struct {
	success *prometheus.CounterVec
	failure *prometheus.CounterVec
}

// NewOperations registers the operation metrics on the provided registerer.
// A nil registerer yields a no-op recorder so components can run unmetered.
func NewOperations(reg prometheus.Registerer) *Operations {
	if reg == nil {
		return &Operations{}
	}
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "operation_success",
		Help: "Successful component operations.",
	}, []string{"component", "operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "operation_failure",
		Help: "Failed component operations.",
	}, []string{"component", "operation"})
	reg.MustRegister(success, failure)
	return &Operations{
		success: success,
		failure: failure,
	}
}

// IncSuccess increments the success counter for the named operation.
func (o *Operations) IncSuccess(component, operation string) {
	if o == nil || o.success == nil {
		return
	}
	o.success.WithLabelValues(normalizeLabel(component), normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (o *Operations) IncFailure(component, operation string) {
	if o == nil || o.failure == nil {
		return
	}
	o.failure.WithLabelValues(normalizeLabel(component), normalizeLabel(operation)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
