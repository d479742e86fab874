// Package prompt renders prompt specifications as plain line-oriented
// questions on an io.Reader/io.Writer pair, so scaffold flows are scriptable
// and testable without a terminal. Cancellation (end of input) is a distinct
// sentinel, not a failure: callers terminate the whole operation cleanly.
package prompt
