// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/pool"
	"github.com/plgd-dev/go-coap/v3/options"
	"github.com/plgd-dev/go-coap/v3/udp"
)

// Session is a CoAP session with a single peer
type Session interface {
	Post(
		ctx context.Context,
		path string,
		contentFormat message.MediaType,
		payload io.ReadSeeker,
		opts ...message.Option,
	) (*pool.Message, error)
	Close() error
}

// Dialer opens a Session to the supplied host:port address
type Dialer func(ctx context.Context, address string) (Session, error)

// Client holds configuration data associated with the CoAP session
type Client struct {
	Dialer Dialer
	// TODO(dcaf) coaps (DTLS with PSK) dialer
}

// NewClient instantiates a new Client speaking CoAP over plain UDP
func NewClient() *Client {
	return &Client{
		Dialer: DialUDP,
	}
}

// DialUDP resolves address and opens a CoAP over UDP session to it. The
// session is bound to ctx: it is torn down once ctx is done.
func DialUDP(ctx context.Context, address string) (Session, error) {
	if _, err := net.ResolveUDPAddr("udp", address); err != nil {
		return nil, fmt.Errorf("resolving %q: %w", address, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := udp.Dial(address, options.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("dialing %q: %w", address, err)
	}

	return conn, nil
}

// Dial opens a session to address using the configured Dialer
func (c Client) Dial(ctx context.Context, address string) (Session, error) {
	if c.Dialer == nil {
		return nil, errors.New("bad configuration: nil dialer")
	}

	return c.Dialer(ctx, address)
}
