package cgiexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/BenChaimberg/evhttpd/httpwire"
)

// headerBodySep is the blank-line separator a CGI program's stdout is split
// on (original_source/src/cgi.rs uses "\n\n"; CGI scripts commonly emit
// bare LF rather than CRLF, so we split on LF here rather than the wire
// codec's CRLF).
var headerBodySep = []byte("\n\n")

// Request is everything Execute needs to populate a CGI subprocess's
// environment and stdin.
type Request struct {
	Path       string // resolved, executable file on disk
	Method     string
	Query      string
	RemoteAddr string
	ServerName string
	ServerPort string
	Protocol   string // e.g. "HTTP/1.1"
	Software   string // product token, e.g. "evhttpd/1.0"
	Body       []byte
}

// Execute spawns req.Path as a child process, blocks until it exits, and
// turns its stdout into a Response. Any I/O or parse failure is turned into
// a 500 Response per §4.10 and §7 rather than a bare error return — the
// caller always has something to send back to the client — but the
// original error is also returned so the caller can log it.
func Execute(ctx context.Context, req Request) (*httpwire.Response, error) {
	cmd := exec.CommandContext(ctx, req.Path)
	cmd.Env = []string{
		"QUERY_STRING=" + req.Query,
		"REMOTE_ADDR=" + req.RemoteAddr,
		"REQUEST_METHOD=" + req.Method,
		"SERVER_NAME=" + req.ServerName,
		"SERVER_PORT=" + req.ServerPort,
		"SERVER_PROTOCOL=" + req.Protocol,
		"SERVER_SOFTWARE=" + req.Software,
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return internalError(), fmt.Errorf("cgiexec: stdin pipe: %w", err)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return internalError(), fmt.Errorf("cgiexec: start: %w", err)
	}

	if _, err := stdin.Write(req.Body); err != nil {
		stdin.Close()
		cmd.Wait()
		return internalError(), fmt.Errorf("cgiexec: write body: %w", err)
	}
	if err := stdin.Close(); err != nil {
		cmd.Wait()
		return internalError(), fmt.Errorf("cgiexec: close stdin: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return internalError(), fmt.Errorf("cgiexec: wait: %w", err)
	}

	headerBlock, body, err := splitOutput(stdout.Bytes())
	if err != nil {
		return internalError(), err
	}
	headers, err := parseCGIHeaders(headerBlock)
	if err != nil {
		return internalError(), fmt.Errorf("cgiexec: parse headers: %w", err)
	}

	headers[httpwire.RespHeaderContentLength] = strconv.Itoa(len(body) + 2)
	return &httpwire.Response{
		Status:  httpwire.StatusOK,
		Version: req.Protocol,
		Headers: headers,
		Body:    body,
	}, nil
}

func splitOutput(out []byte) (headerBlock, body []byte, err error) {
	// A blank first line means an empty header section.
	if bytes.HasPrefix(out, headerBodySep[1:]) {
		return nil, out[1:], nil
	}
	idx := bytes.Index(out, headerBodySep)
	if idx < 0 {
		return nil, nil, fmt.Errorf("cgiexec: no header/body separator in output")
	}
	return out[:idx], out[idx+len(headerBodySep):], nil
}

func parseCGIHeaders(block []byte) (map[string]string, error) {
	headers := make(map[string]string)
	for _, line := range bytes.Split(block, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		idx := bytes.IndexByte(line, ':')
		if idx < 0 {
			return nil, fmt.Errorf("cgiexec: malformed header line %q", line)
		}
		name := string(bytes.TrimSpace(line[:idx]))
		value := string(bytes.TrimSpace(line[idx+1:]))
		headers[name] = value
	}
	return headers, nil
}

func internalError() *httpwire.Response {
	resp := httpwire.NewResponse(httpwire.StatusInternalServerError, "HTTP/1.1")
	resp.Headers[httpwire.RespHeaderContentLength] = "0"
	return resp
}
