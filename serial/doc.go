// Package serial implements the sequential, one-connection-at-a-time
// concurrency variant (§6 mode=single): a single goroutine accepts and
// fully services one connection before accepting the next.
package serial
