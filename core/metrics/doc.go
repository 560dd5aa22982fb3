// Package metrics defines how scheduling runs are reported to observability
// backends. Implementations live in infra/metrics.
package metrics
