// Package cgiexec spawns a resolved file as a CGI subprocess, feeding it
// the request body on stdin and collecting headers + body from its stdout
// (§4.10). Execute blocks on process I/O; callers on the reactor's loop
// goroutine must run it via eventloop.Loop.RunAsync rather than calling it
// inline.
package cgiexec
