// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"net"

	"github.com/plgd-dev/go-coap/v3/mux"
	coapnet "github.com/plgd-dev/go-coap/v3/net"
	"github.com/plgd-dev/go-coap/v3/options"
	"github.com/plgd-dev/go-coap/v3/udp"
)

// NewTestingCoAPServer starts a CoAP over UDP server on a random loopback
// port, routing every path to handler. The server address and its shutdown
// switch are returned.
func NewTestingCoAPServer(handler mux.HandlerFunc) (address string, closerFn func()) {
	l, err := coapnet.NewListenUDP("udp", "127.0.0.1:0")
	if err != nil {
		panic("common: cannot listen on loopback: " + err.Error())
	}

	r := mux.NewRouter()
	r.DefaultHandle(handler)

	srv := udp.NewServer(options.WithMux(r))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(l)
	}()

	address = l.LocalAddr().String()

	closerFn = func() {
		srv.Stop()
		_ = l.Close()
		<-done
	}

	return
}

// NewTestingSink listens on a random loopback UDP port and silently drops
// everything it receives. It stands in for a peer that never answers.
func NewTestingSink() (address string, closerFn func()) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		panic("common: cannot listen on loopback: " + err.Error())
	}

	go func() {
		buf := make([]byte, 2048)
		for {
			if _, _, err := pc.ReadFrom(buf); err != nil {
				return
			}
		}
	}()

	return pc.LocalAddr().String(), func() { _ = pc.Close() }
}
