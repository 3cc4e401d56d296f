// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Dial_nil_dialer(t *testing.T) {
	c := Client{}
	_, err := c.Dial(context.Background(), "127.0.0.1:5683")
	assert.EqualError(t, err, "bad configuration: nil dialer")
}

func TestDialUDP_bad_address(t *testing.T) {
	_, err := DialUDP(context.Background(), "127.0.0.1")
	assert.ErrorContains(t, err, `resolving "127.0.0.1"`)
}

func TestNewClient(t *testing.T) {
	c := NewClient()
	assert.NotNil(t, c.Dialer)
}

func TestDialUDP_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DialUDP(ctx, "127.0.0.1:5683")
	assert.ErrorIs(t, err, context.Canceled)
}
