// Package shared holds request decoding, response writing and request
// context helpers used by the HTTP handlers and middleware.
package shared
