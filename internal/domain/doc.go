// Package domain contains the core business entities and errors of the task
// service. It is independent of any storage engine or delivery mechanism.
package domain
