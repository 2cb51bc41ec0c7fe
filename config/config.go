package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// VirtualHost is one <VirtualHost>...</VirtualHost> block. DocumentRoot is
// canonicalized (symlinks resolved) at parse time so downstream path
// resolution can compare against it directly.
type VirtualHost struct {
	ServerName   string
	DocumentRoot string
}

// ServerConfig is the fully-parsed contents of a configuration file (§3
// ServerConfig, §6).
type ServerConfig struct {
	ListenPort     int
	CacheSizeKB    int
	ThreadPoolSize int
	VirtualHosts   []VirtualHost
}

const (
	prefixListen          = "Listen "
	prefixCacheSize       = "CacheSize "
	prefixThreadPoolSize  = "ThreadPoolSize "
	prefixVirtualHostOpen = "<VirtualHost "
	lineVirtualHostClose  = "</VirtualHost>"
	prefixServerName      = "ServerName "
	prefixDocumentRoot    = "DocumentRoot "
)

// Load reads and parses the configuration file at path.
func Load(path string) (*ServerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the Apache-style grammar fixed by §6 from r.
func Parse(r io.Reader) (*ServerConfig, error) {
	scanner := bufio.NewScanner(r)
	cfg := &ServerConfig{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, prefixListen):
			port, err := strconv.Atoi(strings.TrimPrefix(line, prefixListen))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrMalformedDirective, line)
			}
			cfg.ListenPort = port

		case strings.HasPrefix(line, prefixCacheSize):
			kb, err := strconv.Atoi(strings.TrimPrefix(line, prefixCacheSize))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrMalformedDirective, line)
			}
			cfg.CacheSizeKB = kb

		case strings.HasPrefix(line, prefixThreadPoolSize):
			n, err := strconv.Atoi(strings.TrimPrefix(line, prefixThreadPoolSize))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrMalformedDirective, line)
			}
			cfg.ThreadPoolSize = n

		case strings.HasPrefix(line, prefixVirtualHostOpen) && strings.HasSuffix(line, ">"):
			vh, err := parseVirtualHostBlock(scanner)
			if err != nil {
				return nil, err
			}
			cfg.VirtualHosts = append(cfg.VirtualHosts, vh)

		default:
			return nil, fmt.Errorf("%w: %q", ErrMalformedDirective, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	if len(cfg.VirtualHosts) == 0 {
		return nil, ErrNoVirtualHosts
	}
	return cfg, nil
}

func parseVirtualHostBlock(scanner *bufio.Scanner) (VirtualHost, error) {
	var serverName, documentRoot string
	var haveServerName, haveDocumentRoot bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == lineVirtualHostClose {
			if !haveServerName || !haveDocumentRoot {
				return VirtualHost{}, ErrIncompleteVirtualHost
			}
			return VirtualHost{ServerName: serverName, DocumentRoot: documentRoot}, nil
		}

		switch {
		case strings.HasPrefix(line, prefixServerName):
			if haveServerName {
				return VirtualHost{}, ErrDuplicateDirective
			}
			serverName = strings.TrimPrefix(line, prefixServerName)
			haveServerName = true

		case strings.HasPrefix(line, prefixDocumentRoot):
			if haveDocumentRoot {
				return VirtualHost{}, ErrDuplicateDirective
			}
			raw := strings.TrimPrefix(line, prefixDocumentRoot)
			resolved, err := filepath.EvalSymlinks(raw)
			if err != nil {
				return VirtualHost{}, fmt.Errorf("config: resolve DocumentRoot %q: %w", raw, err)
			}
			documentRoot = resolved
			haveDocumentRoot = true

		default:
			return VirtualHost{}, fmt.Errorf("%w: %q", ErrMalformedDirective, line)
		}
	}
	return VirtualHost{}, ErrUnterminatedBlock
}
