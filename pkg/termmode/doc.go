// Package termmode saves, switches and restores the line discipline of a
// terminal.
//
// A [Controller] hands out a [Guard] when it enters raw mode (no line
// buffering, no echo). The guard owns the captured [Mode] until
// [Guard.Restore] reinstalls it; Restore is idempotent so callers defer it and
// may also call it early, before running code that must see the original mode.
package termmode
