// Package api handles incoming HTTP requests: it decodes and checks payloads,
// calls the task store, and formats JSON responses. Routing lives in
// cmd/server; shared response helpers live in api/shared and cross-cutting
// middleware in api/middleware.
package api
