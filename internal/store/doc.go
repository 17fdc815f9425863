// Package store defines the persistence boundary of the task service.
// The TaskStore interface hides the database engine from the HTTP layer;
// internal/platform/postgres provides the implementation.
package store
