// Package middleware provides HTTP middleware for the media-reel server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics labelled by route template
//   - Gzip response compression for the JSON payloads
//   - Panic recovery that answers with a JSON 500
package middleware
