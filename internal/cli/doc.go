// Package cli implements the taskrank command line: ranking task files,
// reporting dependency cycles and listing strategy profiles.
package cli
