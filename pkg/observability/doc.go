/*
Package observability turns engine lifecycle events into Prometheus metrics.

Metrics.Hooks returns domain.LifecycleHooks that can be passed to the engine
alongside any logging hooks; the collectors live in a caller-supplied registry
so tests and servers can expose them independently.
*/
package observability
