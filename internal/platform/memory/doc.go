// Package memory provides process-local implementations of the store
// interfaces. Records live only as long as the process that holds them.
package memory
