// Package domain contains the task entity, its validation rules and the
// identifier type shared by the HTTP API and the command-line tool.
//
// Scoring lives in the priority subpackage.
package domain
