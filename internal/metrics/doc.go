// Package metrics records link-check, suggestion and fix counters.
//
// Components hold a Recorder and default to NoopRecorder, so metrics never
// need nil checks at call sites:
//
//	type Checker struct {
//	    recorder metrics.Recorder
//	}
//
//	checker := linkcheck.NewChecker(index, table, linkcheck.WithRecorder(rec))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// The CLI has no long-running server, so the registry is exported to a
// node_exporter textfile (WriteTextfile) at the end of a run.
package metrics
