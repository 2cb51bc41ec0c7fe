package config

import "errors"

var (
	// ErrNoVirtualHosts is returned by Parse when the file contains no
	// <VirtualHost> blocks.
	ErrNoVirtualHosts = errors.New("config: no virtual hosts configured")

	// ErrMalformedDirective is returned for any line that is not a
	// recognized top-level directive or virtual-host block line.
	ErrMalformedDirective = errors.New("config: malformed directive")

	// ErrDuplicateDirective is returned when a virtual-host block repeats
	// ServerName or DocumentRoot.
	ErrDuplicateDirective = errors.New("config: duplicate directive in virtual host block")

	// ErrUnterminatedBlock is returned when a <VirtualHost> block is never
	// closed with </VirtualHost>.
	ErrUnterminatedBlock = errors.New("config: unterminated virtual host block")

	// ErrIncompleteVirtualHost is returned when a virtual-host block is
	// missing ServerName or DocumentRoot.
	ErrIncompleteVirtualHost = errors.New("config: virtual host missing ServerName or DocumentRoot")
)
