// Package pool implements the fixed-size worker-pool concurrency variant
// (§6 mode=pool): a single accept loop hands each connection to one of N
// long-lived worker goroutines over a channel, grounded on the same
// accept/dispatch split as original_source/src/pool.rs but built on
// golang.org/x/sync/errgroup instead of hand-rolled channel bookkeeping.
package pool
