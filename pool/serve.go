package pool

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"

	"github.com/BenChaimberg/evhttpd/config"
	"github.com/BenChaimberg/evhttpd/filecache"
	"github.com/BenChaimberg/evhttpd/serial"
	"github.com/BenChaimberg/evhttpd/vhost"
	"golang.org/x/sync/errgroup"
)

// ProductToken is the value reported in every response's Server header.
const ProductToken = "evhttpd/1.0"

// Serve runs cfg.ThreadPoolSize long-lived workers pulling accepted
// connections off a shared channel (§6 mode=pool). It blocks until the
// listener errors or a worker returns a non-nil error, at which point the
// whole pool is torn down via errgroup's shared context.
func Serve(cfg *config.ServerConfig) error {
	numWorkers := cfg.ThreadPoolSize
	if numWorkers <= 0 {
		numWorkers = 1
	}

	hosts := make([]vhost.Host, 0, len(cfg.VirtualHosts))
	for _, vh := range cfg.VirtualHosts {
		hosts = append(hosts, vhost.Host{ServerName: vh.ServerName, DocumentRoot: vh.DocumentRoot})
	}

	var inFlight atomic.Int32
	router, err := vhost.New(hosts, filecache.New(cfg.CacheSizeKB), ProductToken, strconv.Itoa(cfg.ListenPort),
		func() bool { return inFlight.Load() >= int32(numWorkers) })
	if err != nil {
		return fmt.Errorf("pool: build router: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.ListenPort))
	if err != nil {
		return fmt.Errorf("pool: listen: %w", err)
	}
	defer ln.Close()

	g, ctx := errgroup.WithContext(context.Background())
	connCh := make(chan net.Conn)

	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			return worker(ctx, router, connCh, &inFlight)
		})
	}

	g.Go(func() error {
		defer close(connCh)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			select {
			case connCh <- conn:
			case <-ctx.Done():
				conn.Close()
				return ctx.Err()
			}
		}
	})

	return g.Wait()
}

func worker(ctx context.Context, router *vhost.Router, connCh <-chan net.Conn, inFlight *atomic.Int32) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case conn, ok := <-connCh:
			if !ok {
				return nil
			}
			inFlight.Add(1)
			if err := serial.Process(router, conn); err != nil {
				logErr("connection processing failed", err)
			}
			inFlight.Add(-1)
		}
	}
}
