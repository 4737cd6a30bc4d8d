// Package errlog defines the error taxonomy shared across the batch pipeline
// and the transient error-log file surfaced to the operator at the end of a
// run.
//
// Every class except InvariantError is recoverable at the point of detection:
// the offending option, job, or encode operation is dropped and the run keeps
// going. InvariantError marks a structural impossibility and is the only
// class that terminates the process.
package errlog
