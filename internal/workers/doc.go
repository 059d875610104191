/*
Package workers sizes the pool that scans gallery categories.

When running in a container the number of usable CPUs may be capped by cgroup
limits. runtime.NumCPU reports the host count; GOMAXPROCS reflects the
container limit (Go 1.19+), so sizing is based on GOMAXPROCS.

# Basic Usage

Directory scanning is I/O-bound, so the indexer uses two workers per CPU,
capped at the number of categories:

	import "media-reel/internal/workers"

	n := workers.ForIO(len(categories))

For other ratios use Count directly:

	n := workers.Count(3.0, 24) // 3 per CPU, at most 24
	n := workers.Count(2.0, 0)  // no cap

# Overrides

An explicit count from configuration wins over the computed value but is
still capped:

	n := workers.Resolve(cfg.ScanWorkers, len(categories))

The SCAN_WORKERS environment variable is read by Count itself, so operators
can pin the pool size without touching the config file:

	env:
	- name: SCAN_WORKERS
	  value: "2"
*/
package workers
