// Package service contains the application-specific use cases. It
// orchestrates the task record store (defined in internal/store) and the
// prioritization engine (internal/domain/priority) to fulfill the features
// exposed by the HTTP API and the command line.
//
// Error handling principles:
//  1. Service methods return sentinel errors for expected conditions
//  2. Unexpected errors are wrapped in service-specific error types
//  3. Callers use errors.Is/errors.As to check for specific conditions
//  4. The API layer maps service errors to HTTP status codes
package service
