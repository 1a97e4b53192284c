// Package telemetry adapts dataflow engine events into OpenTelemetry
// metrics and spans. It is optional: callers that never construct a
// Provider pay no OTel cost, and a nil-meter Provider degrades its
// Record* methods to no-ops.
package telemetry
