package serial

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/BenChaimberg/evhttpd/cgiexec"
	"github.com/BenChaimberg/evhttpd/config"
	"github.com/BenChaimberg/evhttpd/filecache"
	"github.com/BenChaimberg/evhttpd/httpwire"
	"github.com/BenChaimberg/evhttpd/vhost"
)

// ProductToken is the value reported in every response's Server header.
const ProductToken = "evhttpd/1.0"

// readBufSize matches the reactor variant's scratch buffer size; there is
// no readiness multiplexing here, so reads simply block until data (or
// EOF) arrives.
const readBufSize = 4096

// Serve accepts connections on cfg.ListenPort and processes them one at a
// time, forever, until Accept returns an error. The listener is private to
// Serve; callers have no handle with which to close it.
func Serve(cfg *config.ServerConfig) error {
	hosts := make([]vhost.Host, 0, len(cfg.VirtualHosts))
	for _, vh := range cfg.VirtualHosts {
		hosts = append(hosts, vhost.Host{ServerName: vh.ServerName, DocumentRoot: vh.DocumentRoot})
	}
	router, err := vhost.New(hosts, filecache.New(cfg.CacheSizeKB), ProductToken, strconv.Itoa(cfg.ListenPort), func() bool { return false })
	if err != nil {
		return fmt.Errorf("serial: build router: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.ListenPort))
	if err != nil {
		return fmt.Errorf("serial: listen: %w", err)
	}
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		if err := Process(router, conn); err != nil {
			logErr("connection processing failed", err)
		}
	}
}

// Process implements the read-parse-route-respond cycle for a single
// connection, blocking throughout. The pool variant reuses it verbatim per
// worker goroutine (§6 mode=pool); the sequential variant above is simply
// this called once per accepted connection with no concurrency at all.
func Process(router *vhost.Router, conn net.Conn) error {
	defer conn.Close()

	remoteAddr := conn.RemoteAddr().String()
	req := httpwire.NewIncrementalRequest(remoteAddr)
	buf := make([]byte, readBufSize)

	for req.Kind != httpwire.StateComplete {
		n, err := conn.Read(buf)
		if n > 0 {
			next, parseErr := httpwire.Feed(req, buf[:n])
			if parseErr != nil {
				return parseErr
			}
			req = next
		}
		if err != nil {
			if req.Kind != httpwire.StateComplete {
				return fmt.Errorf("serial: connection closed before request complete: %w", err)
			}
			break
		}
	}

	decision := router.Route(req.Request)
	resp := decision.Response
	if decision.CGI != nil {
		cgiResp, cgiErr := cgiexec.Execute(context.Background(), *decision.CGI)
		resp = router.Finalize(cgiResp)
		if cgiErr != nil {
			_, err := conn.Write(httpwire.Serialize(resp))
			if err != nil {
				return err
			}
			return cgiErr
		}
	}

	_, err := conn.Write(httpwire.Serialize(resp))
	return err
}
