// Package vhost selects a virtual host by the Host header, resolves the
// request path safely inside that host's document root, and decides
// between a static-file response and a CGI dispatch (§4.9).
package vhost
