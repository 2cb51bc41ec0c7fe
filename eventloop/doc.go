// Package eventloop implements a single-threaded, readiness-multiplexed
// reactor: a bounded-wait poll, a token-addressed map of pollable event
// sources, and a command queue that is the sole writer of that map.
//
// # Architecture
//
// Every iteration of [Loop.Run] performs three steps: poll readiness with a
// bounded timeout, dispatch each readiness event to the owning
// [EventSource]'s handler, then drain the command queue. Handlers never
// touch the poller or the source map directly — they return [Command]
// values that the loop later applies through its own command
// executor. This single-writer discipline means a source is never observed
// mid-mutation by a concurrently executing handler.
//
// # Platforms
//
// Registration uses epoll on Linux and kqueue on Darwin; see
// poller_linux.go and poller_darwin.go. Other platforms have no poller.
package eventloop
