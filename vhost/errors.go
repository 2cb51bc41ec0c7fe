package vhost

import "errors"

var (
	// ErrNoHosts is returned by New when given an empty host list.
	ErrNoHosts = errors.New("vhost: no virtual hosts configured")

	errPathEscapesRoot = errors.New("vhost: resolved path escapes document root")
)
