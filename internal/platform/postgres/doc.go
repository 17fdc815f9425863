// Package postgres provides the PostgreSQL implementation of the task
// repository defined in internal/store, together with the pieces needed to
// bring a database up: a connector with bounded retries, the embedded schema
// migration and a health probe.
package postgres
