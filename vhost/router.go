package vhost

import (
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BenChaimberg/evhttpd/cgiexec"
	"github.com/BenChaimberg/evhttpd/filecache"
	"github.com/BenChaimberg/evhttpd/httpdate"
	"github.com/BenChaimberg/evhttpd/httpwire"
)

// Host is one configured virtual host (§3 ServerConfig's virtual-host
// list). DocumentRoot must already be canonicalized (symlinks resolved) by
// the caller — package config does this at parse time.
type Host struct {
	ServerName   string
	DocumentRoot string
}

// Router selects a Host, resolves a path inside it, and decides how to
// serve the request. Every variant, including the multiplexed one, builds
// a single Router at startup and shares it across all connections; no
// Router is built per connection.
type Router struct {
	Hosts        []Host
	Cache        *filecache.Cache
	ProductToken string
	ServerPort   string
	Overloaded   func() bool
}

// New validates hosts and builds a Router.
func New(hosts []Host, cache *filecache.Cache, productToken, serverPort string, overloaded func() bool) (*Router, error) {
	if len(hosts) == 0 {
		return nil, ErrNoHosts
	}
	return &Router{Hosts: hosts, Cache: cache, ProductToken: productToken, ServerPort: serverPort, Overloaded: overloaded}, nil
}

// Decision is Route's result: either an immediate Response, or a CGI
// request the caller must execute asynchronously (§4.10) and finish with
// Finalize before writing it back to the connection.
type Decision struct {
	Response *httpwire.Response
	CGI      *cgiexec.Request
}

// Route implements the full contract of §4.9.
func (r *Router) Route(req *httpwire.Request) Decision {
	if req.Method == httpwire.MethodGet && req.Path == "/load" {
		status := httpwire.StatusOK
		if r.Overloaded != nil && r.Overloaded() {
			status = httpwire.StatusServiceUnavailable
		}
		resp := httpwire.NewResponse(status, req.Version)
		resp.Headers[httpwire.RespHeaderContentLength] = "0"
		return Decision{Response: r.Finalize(resp)}
	}

	host, ok := req.Headers[httpwire.HeaderHost]
	if !ok || host == "" {
		return Decision{Response: r.Finalize(emptyStatus(httpwire.StatusBadRequest, req.Version))}
	}
	vh := r.selectHost(host)

	resolved, err := resolvePath(vh.DocumentRoot, req.Path)
	if err != nil {
		if err == errPathEscapesRoot {
			return Decision{Response: r.Finalize(emptyStatus(httpwire.StatusForbidden, req.Version))}
		}
		return Decision{Response: r.Finalize(emptyStatus(httpwire.StatusNotFound, req.Version))}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return Decision{Response: r.Finalize(emptyStatus(httpwire.StatusNotFound, req.Version))}
	}

	if info.IsDir() {
		resolved, info, ok = r.probeIndex(resolved, req.Headers[httpwire.HeaderUserAgent])
		if !ok {
			return Decision{Response: r.Finalize(emptyStatus(httpwire.StatusNotFound, req.Version))}
		}
	}

	if info.Mode()&0o1 != 0 {
		return Decision{CGI: &cgiexec.Request{
			Path:       resolved,
			Method:     string(req.Method),
			Query:      req.Query,
			RemoteAddr: req.RemoteAddr,
			ServerName: vh.ServerName,
			ServerPort: r.ServerPort,
			Protocol:   req.Version,
			Software:   r.ProductToken,
			Body:       req.Body,
		}}
	}

	return Decision{Response: r.Finalize(r.serveStatic(resolved, info, req))}
}

// Finalize stamps Server and Date onto any response leaving this router —
// including a post-CGI response, which the caller must route back through
// this before writing to the socket (§4.9's "every response" clause).
func (r *Router) Finalize(resp *httpwire.Response) *httpwire.Response {
	resp.Headers[httpwire.RespHeaderServer] = r.ProductToken
	resp.Headers[httpwire.RespHeaderDate] = httpdate.Format(time.Now())
	return resp
}

func (r *Router) selectHost(host string) Host {
	for _, h := range r.Hosts {
		if h.ServerName == host {
			return h
		}
	}
	return r.Hosts[0]
}

func (r *Router) probeIndex(dir, userAgent string) (string, os.FileInfo, bool) {
	candidates := []string{"index.html"}
	if isMobileUA(userAgent) {
		candidates = []string{"index_m.html", "index.html"}
	}
	for _, name := range candidates {
		cand := filepath.Join(dir, name)
		if info, err := os.Stat(cand); err == nil && !info.IsDir() {
			return cand, info, true
		}
	}
	return "", nil, false
}

func (r *Router) serveStatic(resolved string, info os.FileInfo, req *httpwire.Request) *httpwire.Response {
	if ims, ok := req.Headers[httpwire.HeaderIfModifiedSince]; ok {
		if t, err := httpdate.Parse(ims); err == nil && filecache.IsFresh(info.ModTime(), t) {
			resp := httpwire.NewResponse(httpwire.StatusNotModified, req.Version)
			resp.Headers[httpwire.RespHeaderContentLength] = "0"
			return resp
		}
	}

	entry, err := r.Cache.Load(resolved)
	if err != nil {
		return emptyStatus(httpwire.StatusInternalServerError, req.Version)
	}

	resp := httpwire.NewResponse(httpwire.StatusOK, req.Version)
	resp.Body = entry.Content
	resp.Headers[httpwire.RespHeaderContentLength] = strconv.Itoa(len(entry.Content) + 2)
	resp.Headers[httpwire.RespHeaderLastModified] = httpdate.Format(entry.ModifiedAt)
	if ct := contentType(resolved); ct != "" {
		resp.Headers[httpwire.RespHeaderContentType] = ct
	}
	return resp
}

func emptyStatus(status httpwire.StatusCode, version string) *httpwire.Response {
	resp := httpwire.NewResponse(status, version)
	resp.Headers[httpwire.RespHeaderContentLength] = "0"
	return resp
}

// resolvePath joins reqPath onto root and rejects any result that escapes
// it, either via a literal ".." climbing above root (checked against the
// raw request path, before any cleaning can neutralize it) or via a
// same-tree symlink pointing outward once canonicalized (§4.9).
func resolvePath(root, reqPath string) (string, error) {
	if err := checkTraversal(reqPath); err != nil {
		return "", err
	}

	cleaned := path.Clean("/" + reqPath)
	joined := filepath.Join(root, filepath.FromSlash(cleaned))

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if !withinRoot(joined, root) {
			return "", errPathEscapesRoot
		}
		return "", err
	}
	if !withinRoot(resolved, root) {
		return "", errPathEscapesRoot
	}
	return resolved, nil
}

// checkTraversal walks reqPath's segments tracking net depth below root,
// rejecting any ".." that would climb above it. path.Clean on an
// already-rooted path silently absorbs such segments, so this must run
// against the raw, uncleaned request path to actually catch them.
func checkTraversal(reqPath string) error {
	depth := 0
	for _, seg := range strings.Split(reqPath, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			depth--
			if depth < 0 {
				return errPathEscapesRoot
			}
		default:
			depth++
		}
	}
	return nil
}

func withinRoot(candidate, root string) bool {
	return candidate == root || strings.HasPrefix(candidate, root+string(filepath.Separator))
}
