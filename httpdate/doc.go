// Package httpdate formats and parses the RFC 1123 timestamps used in the
// Date and Last-Modified response headers (§3, §9).
package httpdate
