package serial

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/BenChaimberg/evhttpd/filecache"
	"github.com/BenChaimberg/evhttpd/vhost"
	"github.com/stretchr/testify/require"
)

func TestProcessServesStaticFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello"), 0o644))
	router, err := vhost.New([]vhost.Host{{ServerName: "example.com", DocumentRoot: dir}}, filecache.New(0), ProductToken, "8080", func() bool { return false })
	require.NoError(t, err)

	client, server := net.Pipe()
	done := make(chan error, 1)
	go func() { done <- Process(router, server) }()

	_, err = client.Write([]byte("GET /hello.txt HTTP/1.1\r\nHost: example.com\r\n\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 4096)
	n, err := client.Read(buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), "200 OK")
	require.Contains(t, string(buf[:n]), "hello")
	client.Close()
	require.NoError(t, <-done)
}

func TestProcessMissingHostIsBadRequest(t *testing.T) {
	dir := t.TempDir()
	router, err := vhost.New([]vhost.Host{{ServerName: "example.com", DocumentRoot: dir}}, filecache.New(0), ProductToken, "8080", func() bool { return false })
	require.NoError(t, err)

	client, server := net.Pipe()
	done := make(chan error, 1)
	go func() { done <- Process(router, server) }()

	_, err = client.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 4096)
	n, err := client.Read(buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), "400 Bad Request")
	client.Close()
	require.NoError(t, <-done)
}
