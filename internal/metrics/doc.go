// Package metrics wraps a dedicated Prometheus registry with the HTTP
// request instruments and renders them in the text exposition format.
//
// Instrument names and label names are a wire contract shared with existing
// dashboards:
//
//	http_request_total{method,route,status_code}             counter
//	http_request_duration_seconds{method,route,status_code}  summary
//	http_active_requests                                     gauge
//
// The Middleware feeds these instruments from a Fiber application.
package metrics
