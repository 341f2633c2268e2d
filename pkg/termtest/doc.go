// Package termtest provides fakes and decoders for testing code that drives a
// terminal: a [Port] that records mode changes, a [Sleeper] that records
// pauses, and [Decode], which turns raw terminal output back into operations.
package termtest
