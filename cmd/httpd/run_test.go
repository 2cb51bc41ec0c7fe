package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	docRoot := filepath.Join(dir, "site")
	require.NoError(t, os.Mkdir(docRoot, 0o755))
	content := strings.Join([]string{
		"Listen 0",
		"<VirtualHost *:0>",
		"ServerName example.com",
		"DocumentRoot " + docRoot,
		"</VirtualHost>",
	}, "\n")
	confPath := filepath.Join(dir, "httpd.conf")
	require.NoError(t, os.WriteFile(confPath, []byte(content), 0o644))
	return confPath
}

func TestRunHTTPDRejectsUnknownMode(t *testing.T) {
	confPath := writeConfig(t)
	err := runHTTPD(rootCmd, []string{confPath, "bogus"})
	require.ErrorContains(t, err, "unknown mode")
}

func TestRunHTTPDRejectsMissingConfig(t *testing.T) {
	err := runHTTPD(rootCmd, []string{"/does/not/exist.conf", "single"})
	require.ErrorContains(t, err, "load config")
}
