package httpwire

import "errors"

var (
	// ErrMalformedRequestLine covers an unparseable request line: wrong
	// token count, or a method outside {GET, POST}.
	ErrMalformedRequestLine = errors.New("httpwire: malformed request line")

	// ErrMalformedHeader covers a header line missing its ':' separator.
	ErrMalformedHeader = errors.New("httpwire: malformed header line")

	// ErrInvalidContentLength covers a Content-Length value that doesn't
	// parse as a non-negative integer.
	ErrInvalidContentLength = errors.New("httpwire: invalid Content-Length")
)
