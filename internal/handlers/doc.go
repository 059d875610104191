// Package handlers provides the HTTP handlers for the media-reel API.
//
// It includes handlers for:
//   - The gallery payload (/api/gallery)
//   - Health, liveness and readiness probes
//   - Build information
//   - Prometheus metrics
//
// Every gallery request runs a fresh scan; nothing is cached between requests.
package handlers
