package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// CreditMetrics groups the instruments recorded by the credit engine.
type CreditMetrics struct {
	SimulationsRun   metric.Int64Counter
	PaymentsApplied  metric.Int64Counter
	PenaltiesCreated metric.Int64Counter
	ContractsClosed  metric.Int64Counter
}

// InitMetrics initializes the Prometheus exporter and the credit-domain
// instruments. It returns the MeterProvider, the instruments, and an HTTP
// handler for the /metrics endpoint.
func InitMetrics(serviceName string) (*sdkmetric.MeterProvider, *CreditMetrics, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	meter := provider.Meter(serviceName)

	m := &CreditMetrics{}
	if m.SimulationsRun, err = meter.Int64Counter("credit_simulations_total"); err != nil {
		return nil, nil, nil, err
	}
	if m.PaymentsApplied, err = meter.Int64Counter("credit_payments_applied_total"); err != nil {
		return nil, nil, nil, err
	}
	if m.PenaltiesCreated, err = meter.Int64Counter("credit_penalties_created_total"); err != nil {
		return nil, nil, nil, err
	}
	if m.ContractsClosed, err = meter.Int64Counter("credit_contracts_closed_total"); err != nil {
		return nil, nil, nil, err
	}

	return provider, m, promhttp.Handler(), nil
}
