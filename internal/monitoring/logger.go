// Package monitoring holds the diagnostic logging hook shared by the
// simulation and rendering packages.
package monitoring

import (
	"fmt"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Mute silences Logf and returns a function restoring the previous logger.
// Intended for tests: defer monitoring.Mute()().
func Mute() (restore func()) {
	prev := Logf
	SetLogger(nil)
	return func() { Logf = prev }
}

// Capture redirects Logf into a slice of formatted lines and returns the
// slice accessor together with a restore function.
func Capture() (lines func() []string, restore func()) {
	prev := Logf
	var captured []string
	Logf = func(format string, v ...interface{}) {
		captured = append(captured, fmt.Sprintf(format, v...))
	}
	return func() []string { return captured }, func() { Logf = prev }
}
