package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	dir := t.TempDir()
	docRoot := filepath.Join(dir, "site")
	require.NoError(t, os.Mkdir(docRoot, 0o755))

	content := strings.Join([]string{
		"Listen 8080",
		"CacheSize 1024",
		"ThreadPoolSize 4",
		"",
		"<VirtualHost *:8080>",
		"ServerName example.com",
		"DocumentRoot " + docRoot,
		"</VirtualHost>",
	}, "\n")

	cfg, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.ListenPort)
	require.Equal(t, 1024, cfg.CacheSizeKB)
	require.Equal(t, 4, cfg.ThreadPoolSize)
	require.Len(t, cfg.VirtualHosts, 1)
	require.Equal(t, "example.com", cfg.VirtualHosts[0].ServerName)
}

func TestParseMultipleVirtualHosts(t *testing.T) {
	dir := t.TempDir()
	root1 := filepath.Join(dir, "a")
	root2 := filepath.Join(dir, "b")
	require.NoError(t, os.Mkdir(root1, 0o755))
	require.NoError(t, os.Mkdir(root2, 0o755))

	content := strings.Join([]string{
		"Listen 80",
		"<VirtualHost *:80>",
		"ServerName a.example.com",
		"DocumentRoot " + root1,
		"</VirtualHost>",
		"<VirtualHost *:80>",
		"ServerName b.example.com",
		"DocumentRoot " + root2,
		"</VirtualHost>",
	}, "\n")

	cfg, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, cfg.VirtualHosts, 2)
}

func TestParseNoVirtualHostsIsError(t *testing.T) {
	_, err := Parse(strings.NewReader("Listen 80"))
	require.ErrorIs(t, err, ErrNoVirtualHosts)
}

func TestParseUnknownDirectiveIsError(t *testing.T) {
	_, err := Parse(strings.NewReader("Bogus 1"))
	require.ErrorIs(t, err, ErrMalformedDirective)
}

func TestParseUnterminatedBlockIsError(t *testing.T) {
	content := "<VirtualHost *:80>\nServerName x\n"
	_, err := Parse(strings.NewReader(content))
	require.ErrorIs(t, err, ErrUnterminatedBlock)
}

func TestParseIncompleteVirtualHostIsError(t *testing.T) {
	dir := t.TempDir()
	content := "<VirtualHost *:80>\nDocumentRoot " + dir + "\n</VirtualHost>"
	_, err := Parse(strings.NewReader(content))
	require.ErrorIs(t, err, ErrIncompleteVirtualHost)
}

func TestParseDuplicateDirectiveIsError(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"<VirtualHost *:80>",
		"ServerName a",
		"ServerName b",
		"DocumentRoot " + dir,
		"</VirtualHost>",
	}, "\n")
	_, err := Parse(strings.NewReader(content))
	require.ErrorIs(t, err, ErrDuplicateDirective)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	docRoot := filepath.Join(dir, "site")
	require.NoError(t, os.Mkdir(docRoot, 0o755))
	confPath := filepath.Join(dir, "httpd.conf")
	content := strings.Join([]string{
		"Listen 8080",
		"<VirtualHost *:8080>",
		"ServerName example.com",
		"DocumentRoot " + docRoot,
		"</VirtualHost>",
	}, "\n")
	require.NoError(t, os.WriteFile(confPath, []byte(content), 0o644))

	cfg, err := Load(confPath)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.ListenPort)
}
