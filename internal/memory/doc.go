// Package memory sizes the Go heap limit for containerized deployments.
//
// Kubernetes can pass the container memory limit through the Downward API:
//
//	env:
//	  - name: MEMORY_LIMIT
//	    valueFrom:
//	      resourceFieldRef:
//	        resource: limits.memory
//
// [ConfigureFromEnv] turns that into a soft GOMEMLIMIT so the garbage collector
// works harder before the container is OOM-killed. An explicit GOMEMLIMIT
// always wins.
package memory
