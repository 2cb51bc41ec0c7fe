package vhost

import (
	"path/filepath"
	"strings"
)

// contentType derives a Content-Type from a file extension (§4.9); an
// unrecognized extension means the header is simply absent.
func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return "text/plain"
	case ".html":
		return "text/html"
	case ".jpg":
		return "image/jpeg"
	default:
		return ""
	}
}

// isMobileUA reports whether ua indicates a mobile browser worth serving
// the index_m.html variant to (§4.9).
func isMobileUA(ua string) bool {
	return strings.Contains(ua, "iPhone") || strings.Contains(ua, "Mobile")
}
