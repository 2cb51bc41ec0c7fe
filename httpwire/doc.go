// Package httpwire implements the HTTP/1.1 wire format used by the
// reactor's connections: a pure, resumable request parser driven purely
// by appended byte slices, and a response serializer that picks between a
// literal Content-Length body and chunked transfer-encoding.
//
// Neither half performs I/O; callers (package reactor) own the sockets and
// feed bytes in as they arrive.
package httpwire
