package vhost

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BenChaimberg/evhttpd/filecache"
	"github.com/BenChaimberg/evhttpd/httpdate"
	"github.com/BenChaimberg/evhttpd/httpwire"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, hosts []Host) *Router {
	t.Helper()
	r, err := New(hosts, filecache.New(0), "evhttpd/test", "8080", func() bool { return false })
	require.NoError(t, err)
	return r
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func req(method httpwire.Method, path, host string) *httpwire.Request {
	return &httpwire.Request{
		Method:  method,
		Path:    path,
		Version: "HTTP/1.1",
		Headers: map[string]string{httpwire.HeaderHost: host},
	}
}

func TestRouteServesStaticFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.txt", "hello world")
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	dec := r.Route(req(httpwire.MethodGet, "/hello.txt", "example.com"))
	require.Nil(t, dec.CGI)
	require.NotNil(t, dec.Response)
	require.Equal(t, httpwire.StatusOK, dec.Response.Status)
	require.Equal(t, "hello world", string(dec.Response.Body))
	require.Equal(t, "text/plain", dec.Response.Headers[httpwire.RespHeaderContentType])
	require.Equal(t, "evhttpd/test", dec.Response.Headers[httpwire.RespHeaderServer])
}

func TestRoutePathTraversalForbidden(t *testing.T) {
	root := t.TempDir()
	docRoot := filepath.Join(root, "site")
	require.NoError(t, os.Mkdir(docRoot, 0o755))
	writeFile(t, root, "secret.txt", "top secret")
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: docRoot}})

	dec := r.Route(req(httpwire.MethodGet, "/../secret.txt", "example.com"))
	require.NotNil(t, dec.Response)
	require.Equal(t, httpwire.StatusForbidden, dec.Response.Status)
}

func TestRouteNotFound(t *testing.T) {
	dir := t.TempDir()
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	dec := r.Route(req(httpwire.MethodGet, "/missing.txt", "example.com"))
	require.NotNil(t, dec.Response)
	require.Equal(t, httpwire.StatusNotFound, dec.Response.Status)
}

func TestRouteIfModifiedSinceReturnsNotModified(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "hello.txt", "hello world")
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	info, err := os.Stat(p)
	require.NoError(t, err)
	future := info.ModTime().Add(time.Hour)

	request := req(httpwire.MethodGet, "/hello.txt", "example.com")
	request.Headers[httpwire.HeaderIfModifiedSince] = httpdate.Format(future)

	dec := r.Route(request)
	require.NotNil(t, dec.Response)
	require.Equal(t, httpwire.StatusNotModified, dec.Response.Status)
}

func TestRouteHeartbeat(t *testing.T) {
	dir := t.TempDir()
	overloaded := false
	r, err := New([]Host{{ServerName: "example.com", DocumentRoot: dir}}, filecache.New(0), "evhttpd/test", "8080", func() bool { return overloaded })
	require.NoError(t, err)

	dec := r.Route(req(httpwire.MethodGet, "/load", "example.com"))
	require.Equal(t, httpwire.StatusOK, dec.Response.Status)

	overloaded = true
	dec = r.Route(req(httpwire.MethodGet, "/load", "example.com"))
	require.Equal(t, httpwire.StatusServiceUnavailable, dec.Response.Status)
}

func TestRouteMissingHostIsBadRequest(t *testing.T) {
	dir := t.TempDir()
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	request := req(httpwire.MethodGet, "/hello.txt", "")
	delete(request.Headers, httpwire.HeaderHost)
	dec := r.Route(request)
	require.Equal(t, httpwire.StatusBadRequest, dec.Response.Status)
}

func TestRouteUnknownHostFallsBackToFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.txt", "hi")
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	dec := r.Route(req(httpwire.MethodGet, "/hello.txt", "unknown.example"))
	require.Equal(t, httpwire.StatusOK, dec.Response.Status)
}

func TestRouteDirectoryIndexNegotiation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "desktop")
	writeFile(t, dir, "index_m.html", "mobile")
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	desktop := req(httpwire.MethodGet, "/", "example.com")
	dec := r.Route(desktop)
	require.Equal(t, "desktop", string(dec.Response.Body))

	mobile := req(httpwire.MethodGet, "/", "example.com")
	mobile.Headers[httpwire.HeaderUserAgent] = "Mozilla/5.0 (iPhone)"
	dec = r.Route(mobile)
	require.Equal(t, "mobile", string(dec.Response.Body))
}

func TestRouteDirectoryWithNoIndexIsNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o755))
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	dec := r.Route(req(httpwire.MethodGet, "/empty/", "example.com"))
	require.Equal(t, httpwire.StatusNotFound, dec.Response.Status)
}

func TestRouteExecutableDispatchesCGI(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "script.sh", "#!/bin/sh\nprintf '\\n\\nok'")
	require.NoError(t, os.Chmod(p, 0o755))
	r := newTestRouter(t, []Host{{ServerName: "example.com", DocumentRoot: dir}})

	dec := r.Route(req(httpwire.MethodGet, "/script.sh", "example.com"))
	require.Nil(t, dec.Response)
	require.NotNil(t, dec.CGI)
	require.Equal(t, p, dec.CGI.Path)
	require.Equal(t, "example.com", dec.CGI.ServerName)
	require.Equal(t, "8080", dec.CGI.ServerPort)
}
