// Package metrics records manifest build, step and export metrics.
//
// Components receive a Recorder through injection and default to
// NoopRecorder, so metric calls never need nil checks:
//
//	orch := build.NewOrchestrator(registry).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// When metrics are enabled in configuration, the serve and build commands
// create a PrometheusRecorder on a private registry and expose it with
// HTTPHandler on the configured address.
package metrics
