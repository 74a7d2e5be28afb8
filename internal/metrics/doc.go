// Package metrics records what a folio run found and changed.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. PrometheusRecorder keeps the values in a private registry and can
// write them in the node_exporter textfile format, which suits a build tool
// that exits after each run.
package metrics
