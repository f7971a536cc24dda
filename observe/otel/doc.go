// Package otel provides an OpenTelemetry observer plugin for loops.
// It records task and run lifecycle as events on the span carried by the
// routine's context (started, finished, joined, error, panic).
package otel
