//go:build linux || darwin

package reactor

import (
	"fmt"
	"strconv"

	"github.com/BenChaimberg/evhttpd/config"
	"github.com/BenChaimberg/evhttpd/eventloop"
	"github.com/BenChaimberg/evhttpd/filecache"
	"github.com/BenChaimberg/evhttpd/vhost"
)

// ProductToken is the value reported in every response's Server header.
const ProductToken = "evhttpd/1.0"

// overloadThreshold is the registered-source count above which /load
// reports 503. Crude but grounded in something real (the registry's own
// size) rather than a fixed flag nothing ever updates.
const overloadThreshold = 4096

// Bootstrap builds the router and listener described by cfg and registers
// both the listener and the control-input source directly on loop. It is
// the single-threaded reactor variant's entrypoint from cmd/httpd (§6
// mode=select).
func Bootstrap(loop *eventloop.Loop, cfg *config.ServerConfig) error {
	hosts := make([]vhost.Host, 0, len(cfg.VirtualHosts))
	for _, vh := range cfg.VirtualHosts {
		hosts = append(hosts, vhost.Host{ServerName: vh.ServerName, DocumentRoot: vh.DocumentRoot})
	}

	router, err := vhost.New(hosts, filecache.New(cfg.CacheSizeKB), ProductToken, strconv.Itoa(cfg.ListenPort), func() bool { return loop.Len() > overloadThreshold })
	if err != nil {
		return fmt.Errorf("reactor: build router: %w", err)
	}

	listener, err := Listen(loop, cfg.ListenPort, router)
	if err != nil {
		return fmt.Errorf("reactor: listen: %w", err)
	}
	if err := loop.RegisterDirect(ListenerToken, listener, eventloop.EventRead); err != nil {
		return fmt.Errorf("reactor: register listener: %w", err)
	}

	control := NewControlInput(0, ListenerToken)
	if err := loop.RegisterDirect(ControlInputToken, control, eventloop.EventRead); err != nil {
		return fmt.Errorf("reactor: register control input: %w", err)
	}
	return nil
}
