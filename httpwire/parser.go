package httpwire

import (
	"bytes"
	"strconv"
	"strings"
)

// ParseState names one variant of the progressive parse (§3 IncrementalRequest).
type ParseState int

const (
	StateEmpty ParseState = iota
	StateHaveRequestLine
	StateHaveHeaders
	StateReadingBody
	StateComplete
)

var crlf = []byte("\r\n")

// IncrementalRequest is the resumable parse state threaded through
// successive Feed calls. Pending holds bytes left over after the last
// successfully consumed token; it and RemoteAddr are the only fields carried
// unconditionally across every pre-Complete variant.
type IncrementalRequest struct {
	Kind       ParseState
	Pending    []byte
	Line       RequestLine
	Headers    map[string]string
	Body       []byte
	Remaining  int
	Request    *Request
	RemoteAddr string
}

// NewIncrementalRequest starts a fresh parse for a connection accepted from
// remoteAddr.
func NewIncrementalRequest(remoteAddr string) IncrementalRequest {
	return IncrementalRequest{Kind: StateEmpty, RemoteAddr: remoteAddr}
}

// Feed is the pure state-transition function at the heart of §4.6: given
// the bytes newly read off the socket and the current state, it returns
// the next state. It never blocks and never touches the network; it
// advances through as many tokens as the buffered bytes allow, stopping
// only on a need for more input, a parse error, or reaching Complete.
func Feed(state IncrementalRequest, newBytes []byte) (IncrementalRequest, error) {
	s := state
	if len(newBytes) > 0 {
		buf := make([]byte, 0, len(s.Pending)+len(newBytes))
		buf = append(buf, s.Pending...)
		buf = append(buf, newBytes...)
		s.Pending = buf
	}

	for {
		switch s.Kind {
		case StateEmpty:
			line, rest, ok := cutLine(s.Pending)
			if !ok {
				return s, nil
			}
			rl, err := parseRequestLine(line)
			if err != nil {
				return IncrementalRequest{}, err
			}
			s = IncrementalRequest{
				Kind:       StateHaveRequestLine,
				Line:       rl,
				Pending:    rest,
				Headers:    map[string]string{},
				RemoteAddr: s.RemoteAddr,
			}

		case StateHaveRequestLine, StateHaveHeaders:
			line, rest, ok := cutLine(s.Pending)
			if !ok {
				s.Kind = StateHaveHeaders
				return s, nil
			}
			s.Pending = rest
			if len(line) == 0 {
				remaining := 0
				if v, present := s.Headers[HeaderContentLength]; present {
					n, err := strconv.Atoi(v)
					if err != nil || n < 0 {
						return IncrementalRequest{}, ErrInvalidContentLength
					}
					remaining = n
				}
				s.Kind = StateReadingBody
				s.Remaining = remaining
				s.Body = nil
				continue
			}
			name, value, err := parseHeaderLine(line)
			if err != nil {
				return IncrementalRequest{}, err
			}
			if isRecognizedHeader(name) {
				s.Headers[name] = value
			}
			s.Kind = StateHaveHeaders

		case StateReadingBody:
			if s.Remaining == 0 {
				s.Request = &Request{
					Method:     s.Line.Method,
					Path:       s.Line.Path,
					Query:      s.Line.Query,
					Version:    s.Line.Version,
					Headers:    s.Headers,
					Body:       s.Body,
					RemoteAddr: s.RemoteAddr,
				}
				s.Kind = StateComplete
				return s, nil
			}
			take := s.Remaining
			if take > len(s.Pending) {
				take = len(s.Pending)
			}
			s.Body = append(s.Body, s.Pending[:take]...)
			s.Pending = s.Pending[take:]
			s.Remaining -= take
			if s.Remaining > 0 {
				return s, nil
			}
			continue

		case StateComplete:
			return s, nil
		}
	}
}

func cutLine(buf []byte) (line, rest []byte, ok bool) {
	i := bytes.Index(buf, crlf)
	if i < 0 {
		return nil, nil, false
	}
	return buf[:i], buf[i+2:], true
}

func parseRequestLine(line []byte) (RequestLine, error) {
	fields := strings.Fields(string(line))
	if len(fields) != 3 {
		return RequestLine{}, ErrMalformedRequestLine
	}
	method := Method(fields[0])
	if method != MethodGet && method != MethodPost {
		return RequestLine{}, ErrMalformedRequestLine
	}
	path, query := fields[1], ""
	if idx := strings.IndexByte(fields[1], '?'); idx >= 0 {
		path, query = fields[1][:idx], fields[1][idx+1:]
	}
	return RequestLine{Method: method, Path: path, Query: query, Version: fields[2]}, nil
}

func parseHeaderLine(line []byte) (name, value string, err error) {
	idx := bytes.IndexByte(line, ':')
	if idx < 0 {
		return "", "", ErrMalformedHeader
	}
	name = strings.TrimSpace(string(line[:idx]))
	value = strings.TrimSpace(string(line[idx+1:]))
	return name, value, nil
}

func isRecognizedHeader(name string) bool {
	switch name {
	case HeaderHost, HeaderContentLength, HeaderIfModifiedSince, HeaderUserAgent:
		return true
	default:
		return false
	}
}
