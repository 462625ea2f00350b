// Package health holds the process health state: a set of named errors
// reported by the application. The process is healthy exactly when the set
// is empty.
//
// A Store is created once by the monitoring module and shared by every
// collaborator that reports or reads health. Readers always receive a
// snapshot copy.
package health
