// Package store defines interfaces for task persistence operations.
// These interfaces abstract the underlying storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific storage technologies.
package store
