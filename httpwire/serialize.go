package httpwire

import (
	"fmt"
	"strconv"
	"strings"
)

// ChunkThreshold is the body-size cutoff (§4.6) past which (or when
// Content-Length is altogether absent) a response switches to chunked
// transfer-encoding instead of a literal Content-Length.
const ChunkThreshold = 1024

// ChunkSize is the fixed size of each chunk's body when chunking.
const ChunkSize = 1024

// Serialize converts resp into the flat byte sequence written to the
// socket: status line, headers in the order headerOrder gives (§9: order is
// otherwise unspecified), blank line, body, trailing CRLF. It decides between a
// literal Content-Length and chunked transfer-encoding purely from the
// body length and whether Content-Length was set by the caller.
func Serialize(resp *Response) []byte {
	headers := cloneHeaders(resp.Headers)

	_, hasLen := headers[RespHeaderContentLength]
	chunk := !hasLen || len(resp.Body) > ChunkThreshold

	var buf []byte
	buf = append(buf, statusLine(resp)...)

	if chunk {
		delete(headers, RespHeaderContentLength)
		headers[RespHeaderTransferEncoding] = "chunked"
	}

	for _, name := range headerOrder(headers) {
		buf = append(buf, name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, headers[name]...)
		buf = append(buf, crlf...)
	}
	buf = append(buf, crlf...)

	if chunk {
		buf = append(buf, chunkedBody(resp.Body)...)
	} else {
		buf = append(buf, resp.Body...)
	}
	buf = append(buf, crlf...)
	return buf
}

func statusLine(resp *Response) string {
	version := resp.Version
	if version == "" {
		version = "HTTP/1.1"
	}
	return fmt.Sprintf("%s %d %s\r\n", version, int(resp.Status), resp.Status.Reason())
}

func chunkedBody(body []byte) []byte {
	var out []byte
	for len(body) > 0 {
		n := ChunkSize
		if n > len(body) {
			n = len(body)
		}
		out = append(out, strconv.FormatInt(int64(n), 16)...)
		out = append(out, crlf...)
		out = append(out, body[:n]...)
		out = append(out, crlf...)
		body = body[n:]
	}
	out = append(out, '0')
	out = append(out, crlf...)
	out = append(out, crlf...)
	return out
}

func cloneHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// headerOrder imposes a fixed emission order on the six Resp* header names
// so responses built from them are deterministic and testable
// byte-for-byte. Any other header names (e.g. from CGI output) follow in map
// iteration order, which is not stable.
func headerOrder(h map[string]string) []string {
	preferred := []string{
		RespHeaderServer,
		RespHeaderDate,
		RespHeaderContentType,
		RespHeaderLastModified,
		RespHeaderContentLength,
		RespHeaderTransferEncoding,
	}
	var order []string
	seen := make(map[string]bool, len(h))
	for _, name := range preferred {
		if _, ok := h[name]; ok {
			order = append(order, name)
			seen[name] = true
		}
	}
	for name := range h {
		if !seen[name] {
			order = append(order, name)
		}
	}
	return order
}

// ParseHeaderBlock parses a CRLF-separated block of "Name: Value" lines (no
// request line), as used by structural-equality round-trip tests. cgiexec
// does not use it: it parses LF-separated CGI output with its own parser.
func ParseHeaderBlock(block []byte) (map[string]string, error) {
	headers := make(map[string]string)
	for _, raw := range strings.Split(string(block), "\r\n") {
		if raw == "" {
			continue
		}
		name, value, err := parseHeaderLine([]byte(raw))
		if err != nil {
			return nil, err
		}
		headers[name] = value
	}
	return headers, nil
}
