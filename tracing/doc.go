// Package tracing wraps OpenTelemetry so that allocation and plan runs can
// emit spans without the callers importing the SDK. Spans are no-ops until
// Init or InitWithExporter installs a provider.
package tracing
