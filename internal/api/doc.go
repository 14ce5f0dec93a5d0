// Package api provides the HTTP handlers for the scheduling API. Handlers
// decode and validate requests, submit typed commands and queries through
// the dispatcher, and map domain errors to HTTP responses. They contain no
// scheduling logic of their own.
package api
