/*
Package observability provides tools for monitoring a running blending state machine.

It includes a Prometheus collector fed by lifecycle hooks and frame timings, and
structured logging hooks for auditing state changes.
*/
package observability
