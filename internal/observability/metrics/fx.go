package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideRegisterer(reg *prometheus.Registry) prometheus.Registerer { return reg }

func provideGatherer(reg *prometheus.Registry) prometheus.Gatherer { return reg }

// Module wires the prometheus registry and application instruments.
var Module = fx.Module("observability.metrics",
	fx.Provide(
		newRegistry,
		provideRegisterer,
		provideGatherer,
		NewPipelineMetrics,
		NewHTTPMetrics,
	),
)
